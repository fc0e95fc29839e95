package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/syscl/secexec/core/engine"
)

var (
	runDir      string
	runEnv      []string
	runTimeout  time.Duration
	runFallback bool
)

var runCmd = &cobra.Command{
	Use:   "run COMMAND",
	Short: "Execute one command string and exit with its status.",
	Long: `Parses COMMAND into a syntax tree and executes it without a shell.
Stdout and stderr are forwarded; the process exits with the command's
exit code (127 if the program was not found, 124 on timeout).`,
	Example: `  secexec run 'printf "x\ny\nx\n" | sort | uniq -c'
  secexec run --env GREETING=hello 'echo $GREETING'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var engineOpts []engine.Option
		if runFallback {
			if !cfg.AllowInsecureFallback {
				return fmt.Errorf("--insecure-shell-fallback is disabled by the configuration")
			}
			engineOpts = append(engineOpts, engine.WithInsecureShellFallback(cfg.FallbackShell))
		}

		eng, closer, err := buildEngine(cfg, engineOpts...)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx := context.Background()
		timeout := cfg.Timeout()
		if cmd.Flags().Changed("timeout") {
			timeout = runTimeout
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res := eng.Execute(ctx, args[0], &engine.Options{
			Dir: runDir,
			Env: envFromFlags(runEnv),
		})

		fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
		fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
		if res.ExitCode != 0 {
			closer.Close()
			os.Exit(res.ExitCode)
		}
		return nil
	},
}

// envFromFlags converts repeated KEY=VALUE flags into the execution
// environment. No flags means nil, which inherits the caller's environment;
// any flag at all makes the given set the child's entire environment.
func envFromFlags(entries []string) map[string]string {
	if len(entries) == 0 {
		return nil
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out[key] = value
	}
	return out
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runDir, "dir", "", "working directory for launched processes")
	runCmd.Flags().StringArrayVar(&runEnv, "env", nil, "KEY=VALUE environment entry; replaces the inherited environment (repeatable)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "deadline for the whole execution (e.g. 30s); overrides the config")
	runCmd.Flags().BoolVar(&runFallback, "insecure-shell-fallback", false, "re-run unsupported constructs through the configured shell (reduced security)")
}
