package window

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrNoSource is returned when a window operation needs a backing
	// source and there is none.
	ErrNoSource = errors.New("window has no backing source")

	errIsDir = syscall.EISDIR
)

// ReadError reports a failed chunk read. The window is unchanged when it is
// returned.
type ReadError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
