package fetch

import "context"

// Pending is the handle of a request started with FetchAsync. It resolves
// exactly once.
type Pending struct {
	done  chan struct{}
	value any
	err   error
}

// FetchAsync starts the request in a new goroutine and returns immediately.
func (e *Executor) FetchAsync(ctx context.Context, url string, opts Options) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		p.value, p.err = e.Fetch(ctx, url, opts)
		close(p.done)
	}()
	return p
}

// Done is closed once the request has resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the request resolves and returns its outcome.
func (p *Pending) Wait() (any, error) {
	<-p.done
	return p.value, p.err
}
