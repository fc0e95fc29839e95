package engine

import (
	"bytes"
	"context"
	"io"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// runPipeline launches every stage before waiting on any, wiring stage i's
// stdout into stage i+1's stdin with real inter-process pipes. Each stage's
// stderr drains into its own buffer while the pipeline runs; the aggregate
// is concatenated by stage index, not completion time, so output is
// deterministic. The terminal stage supplies the exit code and stdout.
func (e *Engine) runPipeline(ctx context.Context, stages [][]string, rc runConfig) (execResult, error) {
	if len(stages) == 1 {
		return e.launch(ctx, stages[0], rc)
	}

	var (
		cmds    []*exec.Cmd
		stderrs = make([]bytes.Buffer, len(stages))
		stdout  bytes.Buffer
		prevOut io.ReadCloser
	)

	for i, argv := range stages {
		stdin := prevOut

		path, err := exec.LookPath(argv[0])
		if err != nil {
			// Abort construction. Stages already running are terminated and
			// reaped rather than left behind.
			abortStarted(cmds, stdin)
			return notFound(argv[0]), nil
		}

		cmd := &exec.Cmd{
			Path:   path,
			Args:   argv,
			Dir:    rc.dir,
			Env:    rc.env.Environ(),
			Stdin:  stdin,
			Stderr: &stderrs[i],
		}
		setProcGroup(cmd)

		if i == len(stages)-1 {
			cmd.Stdout = &stdout
			prevOut = nil
		} else {
			pipe, err := cmd.StdoutPipe()
			if err != nil {
				abortStarted(cmds, stdin)
				return execResult{}, err
			}
			prevOut = pipe
		}

		if err := cmd.Start(); err != nil {
			if prevOut != nil {
				_ = prevOut.Close()
			}
			abortStarted(cmds, stdin)
			return execResult{}, err
		}
		rc.log.ProcessStarted(argv, cmd.Process.Pid)
		cmds = append(cmds, cmd)
	}

	codes := make([]int, len(cmds))
	var g errgroup.Group
	for i, cmd := range cmds {
		i, cmd := i, cmd
		g.Go(func() error {
			err := cmd.Wait()
			code, ok := exitStatus(err)
			if !ok {
				return err
			}
			codes[i] = code
			rc.log.ProcessExited(cmd.Args[0], code)
			return nil
		})
	}

	// Deadline watchdog. Stages are killed in pipeline order.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			for _, cmd := range cmds {
				rc.log.DeadlineKill(cmd.Args[0], cmd.Process.Pid)
				killProcGroup(cmd)
			}
		case <-watchDone:
		}
	}()

	waitErr := g.Wait()
	close(watchDone)

	if ctx.Err() != nil {
		return execResult{}, ctx.Err()
	}
	if waitErr != nil {
		return execResult{}, waitErr
	}

	return execResult{
		stdout:   stdout.Bytes(),
		stderr:   concatStderr(stderrs),
		exitCode: codes[len(codes)-1],
	}, nil
}

// abortStarted tears down a partially built pipeline. Closing the dangling
// read end unblocks any stage blocked writing to it; the group kill covers
// stages that would never exit on their own. Every started stage is reaped
// before returning.
func abortStarted(cmds []*exec.Cmd, tail io.ReadCloser) {
	if tail != nil {
		_ = tail.Close()
	}
	for _, cmd := range cmds {
		killProcGroup(cmd)
		_ = cmd.Wait()
	}
}

func concatStderr(bufs []bytes.Buffer) []byte {
	var out []byte
	for i := range bufs {
		out = append(out, bufs[i].Bytes()...)
	}
	return out
}
