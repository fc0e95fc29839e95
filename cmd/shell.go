package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive prompt that runs each line through the engine.",
	Long: `Reads lines and executes each one as a command string. Useful for
exploring which constructs the safe subset accepts; anything rejected is
reported inline instead of being run by a real shell.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, closer, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		rl, err := readline.New(cfg.Prompt)
		if err != nil {
			return err
		}
		defer rl.Close()

		errColor := color.New(color.FgRed)
		failPrompt := color.New(color.FgRed).Sprint(cfg.Prompt)

		for {
			line, err := rl.Readline()
			switch {
			case err == io.EOF:
				return nil
			case err == readline.ErrInterrupt:
				continue
			case err != nil:
				return err
			case strings.TrimSpace(line) == "":
				continue
			}

			ctx, cancel := context.Background(), context.CancelFunc(func() {})
			if timeout := cfg.Timeout(); timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, timeout)
			}

			res := eng.Execute(ctx, line, nil)
			cancel()
			fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
			if res.Stderr != "" {
				errColor.Fprintln(cmd.ErrOrStderr(), strings.TrimRight(res.Stderr, "\n"))
			}

			if res.ExitCode != 0 {
				rl.SetPrompt(failPrompt)
			} else {
				rl.SetPrompt(cfg.Prompt)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
