package engine

import (
	"bytes"
	"context"
	"os/exec"
)

// launch runs a single resolved argv as one OS process and collects its
// output. argv[0] resolves against the executable search path directly;
// the string is never re-interpreted by a shell. Stdin is closed.
func (e *Engine) launch(ctx context.Context, argv []string, rc runConfig) (execResult, error) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return notFound(argv[0]), nil
	}

	var stdout, stderr bytes.Buffer
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Dir:    rc.dir,
		Env:    rc.env.Environ(),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	setProcGroup(cmd)

	if err := cmd.Start(); err != nil {
		return execResult{}, err
	}
	rc.log.ProcessStarted(argv, cmd.Process.Pid)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		rc.log.DeadlineKill(argv[0], cmd.Process.Pid)
		killProcGroup(cmd)
		<-done
		return execResult{}, ctx.Err()
	}

	code, ok := exitStatus(waitErr)
	if !ok {
		return execResult{}, waitErr
	}
	rc.log.ProcessExited(argv[0], code)
	return execResult{stdout: stdout.Bytes(), stderr: stderr.Bytes(), exitCode: code}, nil
}
