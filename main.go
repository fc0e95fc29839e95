package main

import "github.com/syscl/secexec/cmd"

func main() {
	cmd.Execute()
}
