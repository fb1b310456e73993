// Package clipboard provides yank registers backed by the system clipboard,
// falling back to an in-process register when no system clipboard is
// available.
//
// The system clipboard holds text, so clips are written one per line as
// lowercase hex. Text pasted from elsewhere that is not in that form is
// taken as a single clip of raw bytes.
package clipboard

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	sysclip "github.com/zyedidia/clipboard"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/logging"
)

// Method selects where yanked bytes go.
type Method uint8

const (
	// System uses the system clipboard.
	System Method = iota
	// Internal keeps clips inside the process.
	Internal
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case System:
		return "system"
	case Internal:
		return "internal"
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod parses a configuration value.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "system":
		return System, nil
	case "internal":
		return Internal, nil
	}
	return 0, fmt.Errorf("unknown clipboard method %q", s)
}

// ErrUnavailable is returned when the system clipboard cannot be used.
var ErrUnavailable = errors.New("system clipboard unavailable")

// systemRegister is the name of the clipboard selection written to.
const systemRegister = "clipboard"

// Backend is the text clipboard a SystemRegister talks to.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type osBackend struct{}

func (osBackend) ReadAll() (string, error) { return sysclip.ReadAll(systemRegister) }
func (osBackend) WriteAll(text string) error {
	return sysclip.WriteAll(text, systemRegister)
}

// SystemRegister yanks to and pastes from a text clipboard.
type SystemRegister struct {
	backend Backend
	log     *logging.Logger

	// last is what this register wrote, returned as is when the clipboard
	// still holds it.
	last     string
	lastClip [][]byte
}

var _ buffer.Register = (*SystemRegister)(nil)

// NewSystemRegister returns a register on the given clipboard.
func NewSystemRegister(b Backend, log *logging.Logger) *SystemRegister {
	return &SystemRegister{backend: b, log: log.WithComponent("clipboard")}
}

// Yank writes clips to the clipboard.
func (r *SystemRegister) Yank(clips [][]byte) error {
	text := Encode(clips)
	if err := r.backend.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	r.last = text
	r.lastClip = copyClips(clips)
	r.log.Debug("yanked %d clips", len(clips))
	return nil
}

// Paste reads clips from the clipboard.
func (r *SystemRegister) Paste() ([][]byte, error) {
	text, err := r.backend.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read clipboard: %w", err)
	}
	if text == r.last && r.lastClip != nil {
		return r.lastClip, nil
	}
	return Decode(text), nil
}

// New returns the register for m. When the system clipboard cannot be
// initialized an in-process register is returned together with
// ErrUnavailable wrapping the cause; the error is not fatal.
func New(m Method, log *logging.Logger) (buffer.Register, error) {
	if m == Internal {
		return &buffer.MemRegister{}, nil
	}
	if err := sysclip.Initialize(); err != nil {
		log.WithComponent("clipboard").Warn("falling back to internal register: %v", err)
		return &buffer.MemRegister{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return NewSystemRegister(osBackend{}, log), nil
}

// Encode formats clips as clipboard text, one hex line per clip.
func Encode(clips [][]byte) string {
	lines := make([]string, len(clips))
	for i, c := range clips {
		lines[i] = hex.EncodeToString(c)
	}
	return strings.Join(lines, "\n")
}

// Decode parses clipboard text written by Encode. Any other text becomes a
// single clip holding its bytes.
func Decode(text string) [][]byte {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	clips := make([][]byte, 0, len(lines))
	for _, line := range lines {
		b, err := hex.DecodeString(strings.TrimSuffix(line, "\r"))
		if err != nil {
			return [][]byte{[]byte(text)}
		}
		clips = append(clips, b)
	}
	return clips
}

func copyClips(clips [][]byte) [][]byte {
	out := make([][]byte, len(clips))
	for i, c := range clips {
		out[i] = append([]byte(nil), c...)
	}
	return out
}
