package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Environ holds the environment variables visible to a single execution.
// It is built once per call and read-only afterwards; child evaluations see
// the same variables as their parent.
type Environ struct {
	env map[string]string
}

// NewEnviron creates an empty environment.
func NewEnviron() *Environ {
	return &Environ{env: make(map[string]string)}
}

// NewEnvironFromMap copies vars into a new environment.
func NewEnvironFromMap(vars map[string]string) *Environ {
	out := NewEnviron()
	for k, v := range vars {
		out.env[k] = v
	}
	return out
}

// NewEnvironFromList creates a new environment from KEY=VALUE entries as
// produced by os.Environ. Entries without "=" get an empty value.
func NewEnvironFromList(environ []string) *Environ {
	out := NewEnviron()
	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.env[key] = value
	}
	return out
}

// Getenv returns the value for key, or "" if unset.
func (m *Environ) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// LookupEnv returns the value for key and whether it was set.
func (m *Environ) LookupEnv(key string) (string, bool) {
	val, ok := m.env[key]
	return val, ok
}

// Environ returns the variables as a sorted KEY=VALUE list suitable for
// exec.Cmd. Sorting keeps child environments deterministic between calls.
func (m *Environ) Environ() []string {
	env := make([]string, 0, len(m.env))
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}
