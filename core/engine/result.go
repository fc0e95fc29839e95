package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Exit codes the engine reserves for its own outcomes. All other codes come
// from the processes themselves.
const (
	// ExitFailure reports parse failures and internal faults.
	ExitFailure = 1
	// ExitTimeout is reported when the caller's deadline or cancellation
	// terminated the execution.
	ExitTimeout = 124
	// ExitNotFound mirrors the shell convention for unresolvable argv[0].
	ExitNotFound = 127
)

// Result is the outcome of executing a command string. Output bytes are
// decoded as UTF-8 with invalid sequences replaced, so a malformed stream
// can never mask an exit code.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// execResult carries raw process output through the evaluator. Failing leaf
// commands travel as ordinary results with a nonzero exit code; only
// internal faults unwind as errors.
type execResult struct {
	stdout   []byte
	stderr   []byte
	exitCode int
}

func (r execResult) result() Result {
	return Result{
		Stdout:   decode(r.stdout),
		Stderr:   decode(r.stderr),
		ExitCode: r.exitCode,
	}
}

// combine concatenates two results with no injected separator, reporting the
// right side's exit code. Matches what the processes actually wrote; callers
// needing line semantics split on newlines themselves.
func combine(left, right execResult) execResult {
	out := execResult{exitCode: right.exitCode}
	out.stdout = append(append(out.stdout, left.stdout...), right.stdout...)
	out.stderr = append(append(out.stderr, left.stderr...), right.stderr...)
	return out
}

func notFound(argv0 string) execResult {
	return execResult{
		stderr:   []byte(fmt.Sprintf("Command not found: %s", argv0)),
		exitCode: ExitNotFound,
	}
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
