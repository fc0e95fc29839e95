package cmd

import (
	"errors"
	"io"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/syscl/secexec/core/config"
	"github.com/syscl/secexec/core/engine"
	"github.com/syscl/secexec/core/logger"
)

var cfgPath string

// loadConfig returns the on-disk configuration, falling back to the embedded
// defaults when no config file exists.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return configuration, configuration.Validate()
}

// buildEngine wires an engine from the configuration. The returned closer
// flushes the event log, if one is open.
func buildEngine(cfg *config.Configuration, opts ...engine.Option) (*engine.Engine, io.Closer, error) {
	if cfg.EventLog {
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, engine.WithLogger(logger.NewJSONLinesLogRecorder(fd)))
		return engine.New(opts...), fd, nil
	}
	return engine.New(opts...), io.NopCloser(nil), nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "secexec",
	Short: "Run shell-like command strings without a shell",
	Long: `Executes command strings with pipes, &&, || and ; by walking the
parsed syntax tree and spawning processes directly. The string is never
handed to a real shell, so argument boundaries can't be subverted by
crafted input.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
