// Package engine evaluates parsed command trees by launching OS processes
// directly from resolved argument vectors. Pipes, && / || / ; control flow
// and variable expansion behave like a shell's, but no shell is ever
// involved: the command string is parsed exactly once, into a tree, and
// argument boundaries survive intact from parse to exec.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/syscl/secexec/core/logger"
	"github.com/syscl/secexec/core/shell"
)

// Engine executes command strings by walking their parsed trees. An Engine
// holds no per-call state and is safe for concurrent use; unrelated
// executions never interfere.
type Engine struct {
	log           *logger.Logger
	fallbackShell string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the event logger used for execution telemetry. The logger
// is injected rather than configured process-wide so embedding programs keep
// control of their own logging.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithInsecureShellFallback re-runs input that is syntactically valid but
// uses constructs outside the safe subset through `shell -c`. This reopens
// the injection surface the engine exists to close; enable it only for
// trusted input that genuinely needs the full grammar. Malformed input is
// still rejected.
func WithInsecureShellFallback(shell string) Option {
	return func(e *Engine) { e.fallbackShell = shell }
}

// New creates an Engine. Without options it logs nothing and rejects every
// unsupported construct.
func New(opts ...Option) *Engine {
	e := &Engine{log: logger.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options control a single execution.
type Options struct {
	// Dir is the working directory for launched processes. Empty means the
	// calling process's working directory.
	Dir string
	// Env is both the expansion mapping for $NAME references and the entire
	// environment of launched processes. nil inherits the calling process's
	// environment; an empty non-nil map runs children with no variables.
	Env map[string]string
}

// runConfig is the resolved per-call context threaded through evaluation.
// It is read-only once built; children never mutate it.
type runConfig struct {
	dir string
	env *Environ
	log *logger.InvocationLogger
}

// Execute parses and runs command, blocking until the whole tree resolves.
// Failures are encoded in the Result rather than a second error channel:
// exit 1 with a "Failed to parse command" or "Error executing command"
// diagnostic, 127 for an unresolvable program name, 124 when ctx expired
// (every started process is terminated first).
func (e *Engine) Execute(ctx context.Context, command string, opts *Options) Result {
	if opts == nil {
		opts = &Options{}
	}
	rc := runConfig{
		dir: opts.Dir,
		env: callEnv(opts.Env),
		log: e.log.NewInvocation(),
	}
	rc.log.CommandReceived(command)

	nodes, err := shell.Parse(command)
	if err != nil {
		return e.rejectOrFallback(ctx, command, err, rc)
	}

	var out execResult
	for i, node := range nodes {
		res, err := e.eval(ctx, node, rc)
		if err != nil {
			return failure(err)
		}
		if i == 0 {
			out = res
		} else {
			out = combine(out, res)
		}
	}
	return out.result()
}

// eval dispatches on node kind. Each node is visited exactly once, depth
// first; a failing leaf flows back as a result with a nonzero exit code so
// combinators can apply their semantics, never as an error.
func (e *Engine) eval(ctx context.Context, node shell.Node, rc runConfig) (execResult, error) {
	switch node := node.(type) {
	case *shell.Command:
		argv, err := resolveArgs(node.Args, rc.env)
		if err != nil {
			return execResult{}, err
		}
		if len(argv) == 0 {
			return execResult{}, nil
		}
		return e.launch(ctx, argv, rc)

	case *shell.Pipeline:
		stages := make([][]string, 0, len(node.Stages))
		for _, stage := range node.Stages {
			argv, err := resolveArgs(stage.Args, rc.env)
			if err != nil {
				return execResult{}, err
			}
			stages = append(stages, argv)
		}
		return e.runPipeline(ctx, stages, rc)

	case *shell.List:
		return e.evalList(ctx, node, rc)

	default:
		return execResult{}, fmt.Errorf("unknown node type %T", node)
	}
}

// resolveArgs expands each token into exactly one argv entry.
func resolveArgs(args []shell.Token, env *Environ) ([]string, error) {
	argv := make([]string, 0, len(args))
	for _, tok := range args {
		arg, err := tok.Resolve(env.Getenv)
		if err != nil {
			return nil, err
		}
		argv = append(argv, arg)
	}
	return argv, nil
}

func (e *Engine) rejectOrFallback(ctx context.Context, command string, parseErr error, rc runConfig) Result {
	var unsupported *shell.UnsupportedError
	if errors.As(parseErr, &unsupported) && e.fallbackShell != "" {
		rc.log.FallbackEngaged(e.fallbackShell, command)
		res, err := e.launch(ctx, []string{e.fallbackShell, "-c", command}, rc)
		if err != nil {
			return failure(err)
		}
		return res.result()
	}

	rc.log.CommandRejected(command, parseErr.Error())
	return Result{
		Stderr:   fmt.Sprintf("Failed to parse command: %v", parseErr),
		ExitCode: ExitFailure,
	}
}

func failure(err error) Result {
	code := ExitFailure
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		code = ExitTimeout
	}
	return Result{
		Stderr:   fmt.Sprintf("Error executing command: %v", err),
		ExitCode: code,
	}
}

func callEnv(vars map[string]string) *Environ {
	if vars == nil {
		return NewEnvironFromList(os.Environ())
	}
	return NewEnvironFromMap(vars)
}

// Execute runs command with a default Engine and no deadline.
func Execute(command string, opts *Options) Result {
	return New().Execute(context.Background(), command, opts)
}
