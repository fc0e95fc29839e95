package engine

import "context"

// Invocation is a single in-flight execution started with Engine.Start.
type Invocation struct {
	done chan struct{}
	res  Result
}

// Start begins executing command without blocking the caller. The execution
// observes ctx exactly as Execute does; semantics of the two modes are
// identical, only the scheduling differs.
func (e *Engine) Start(ctx context.Context, command string, opts *Options) *Invocation {
	inv := &Invocation{done: make(chan struct{})}
	go func() {
		inv.res = e.Execute(ctx, command, opts)
		close(inv.done)
	}()
	return inv
}

// Done is closed when the execution finishes. Use it to multiplex over
// several invocations; call Wait to collect the result.
func (inv *Invocation) Done() <-chan struct{} {
	return inv.done
}

// Wait blocks until the execution finishes and returns its result.
func (inv *Invocation) Wait() Result {
	<-inv.done
	return inv.res
}
