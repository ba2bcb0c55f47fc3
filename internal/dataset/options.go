package dataset

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/samdwyer/mazetokens/internal/generate"
)

// Option configures generation and loading.
type Option func(*options)

type options struct {
	registry    *generate.Registry
	logger      zerolog.Logger
	parallelism int
	progress    func(done, total int)
}

func buildOptions(opts []Option) options {
	o := options{
		registry:    generate.Default,
		logger:      zerolog.Nop(),
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallelism < 1 {
		o.parallelism = 1
	}
	return o
}

// WithRegistry resolves generator names against r instead of generate.Default.
func WithRegistry(r *generate.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithParallelism bounds the number of mazes generated concurrently.
// Values below 1 mean 1. Output does not depend on this setting.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithProgress registers a callback invoked after each maze is finished.
// It is called from worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}
