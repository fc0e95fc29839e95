//go:build !windows

package engine

import (
	"errors"
	"os/exec"
	"syscall"
)

// setProcGroup puts the child in its own process group so cancellation can
// signal the whole group, including anything the child forks.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcGroup forcibly terminates cmd's process group. Safe to call for
// commands that already exited.
func killProcGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}

// exitStatus maps a Wait error to the shell-visible exit code. Signal deaths
// use the 128+signal convention. ok is false for faults that are not process
// exits, such as I/O errors while draining output.
func exitStatus(err error) (code int, ok bool) {
	if err == nil {
		return 0, true
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	if status, isWait := exitErr.Sys().(syscall.WaitStatus); isWait && status.Signaled() {
		return 128 + int(status.Signal()), true
	}
	return exitErr.ExitCode(), true
}
