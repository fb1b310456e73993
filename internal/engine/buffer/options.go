package buffer

import "github.com/dshills/hexstorm/internal/logging"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithName sets the name shown in the status line. File-backed buffers
// default to the base name of their path.
func WithName(name string) Option {
	return func(b *Buffer) {
		b.name = name
	}
}

// WithHistoryLimit sets the maximum number of undo actions kept.
func WithHistoryLimit(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.historyLimit = n
		}
	}
}

// WithLogger sets the logger used by the buffer and its window.
func WithLogger(log *logging.Logger) Option {
	return func(b *Buffer) {
		b.log = log
	}
}
