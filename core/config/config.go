package config

import (
	_ "embed"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	EventLogName      = "events.log"
)

// Configuration controls the secexec CLI.
type Configuration struct {
	configFs afero.Fs

	// DefaultTimeout bounds each run unless the flag overrides it, as a Go
	// duration string. "0s" means no deadline.
	DefaultTimeout string `json:"default_timeout" validate:"required"`

	// AllowInsecureFallback permits `run --insecure-shell-fallback`. When
	// false the flag is refused outright, so a deployment can forbid the
	// reduced-security mode in its config.
	AllowInsecureFallback bool `json:"allow_insecure_fallback"`

	// FallbackShell is invoked as `shell -c <input>` when the fallback is
	// both permitted and requested.
	FallbackShell string `json:"fallback_shell" validate:"required"`

	// Prompt shown by the interactive shell.
	Prompt string `json:"prompt" validate:"required"`

	// EventLog enables the JSON-lines execution event log.
	EventLog bool `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.DefaultTimeout); err != nil {
		return fmt.Errorf("default_timeout: %v", err)
	}
	return nil
}

// Timeout returns DefaultTimeout as a duration, zero meaning none.
func (c *Configuration) Timeout() time.Duration {
	d, err := time.ParseDuration(c.DefaultTimeout)
	if err != nil {
		return 0
	}
	return d
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_RDONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the embedded configuration backed by an in-memory
// filesystem. Used when no config file exists on disk.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}
