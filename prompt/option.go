package prompt

import "github.com/ardnew/acd/log"

// Option configures a prompter.
type Option func(*options)

type options struct {
	history *History
	logger  log.Logger
	plain   bool
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithHistory records answers in h and offers them for recall.
func WithHistory(h *History) Option {
	return func(o *options) {
		o.history = h
	}
}

// WithLogger sets the logger for tracing answers.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPlain selects the line prompter even on a terminal.
func WithPlain(plain bool) Option {
	return func(o *options) {
		o.plain = plain
	}
}
