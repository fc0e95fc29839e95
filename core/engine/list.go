package engine

import (
	"context"

	"github.com/syscl/secexec/core/shell"
)

// evalList applies short-circuit control flow. The left side always runs
// first; the operator and its exit code decide whether the right side runs.
// When both sides run, their outputs are concatenated raw with no injected
// separator and the right side's exit code wins. When the right side is
// skipped, the left result passes through untouched.
func (e *Engine) evalList(ctx context.Context, list *shell.List, rc runConfig) (execResult, error) {
	left, err := e.eval(ctx, list.Left, rc)
	if err != nil {
		return execResult{}, err
	}

	var runRight bool
	switch list.Op {
	case shell.And:
		runRight = left.exitCode == 0
	case shell.Or:
		runRight = left.exitCode != 0
	case shell.Seq:
		runRight = true
	}
	if !runRight {
		return left, nil
	}

	right, err := e.eval(ctx, list.Right, rc)
	if err != nil {
		return execResult{}, err
	}
	return combine(left, right), nil
}
