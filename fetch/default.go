package fetch

import (
	"context"
	"sync"
)

var (
	defaultOnce     sync.Once
	defaultExecutor *Executor
)

// Default returns the shared executor built from the zero Config on first use.
func Default() *Executor {
	defaultOnce.Do(func() {
		e, err := New(Config{})
		if err != nil {
			// the zero Config always validates
			panic(err)
		}
		defaultExecutor = e
	})
	return defaultExecutor
}

// Fetch performs the request on the default executor.
//
//	data, err := fetch.Fetch(ctx, "http://localhost:8080/json/a?b=c", fetch.Options{})
func Fetch(ctx context.Context, url string, opts Options) (any, error) {
	return Default().Fetch(ctx, url, opts)
}

// Do performs the request on the default executor and returns the envelope.
func Do(ctx context.Context, url string, opts Options) (*ResponseEnvelope, error) {
	return Default().Do(ctx, url, opts)
}
