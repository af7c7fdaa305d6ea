package qrfountain

import (
	"runtime"

	"github.com/bft-labs/qrfountain/internal/ports"
	"github.com/bft-labs/qrfountain/pkg/log"
)

// Option configures optional behavior of a Generator.
type Option func(*options)

type options struct {
	logger  ports.Logger
	workers int
	verify  bool
}

func defaultOptions() options {
	return options{
		logger:  log.NewNoopLogger(),
		workers: runtime.NumCPU(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers bounds the number of packets rendered in parallel.
// Values below 1 render sequentially. Defaults to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithVerify makes Generate decode the packets after dropping as many as
// the code tolerates, failing before anything is written if the payload
// does not come back intact.
func WithVerify(v bool) Option {
	return func(o *options) {
		o.verify = v
	}
}
