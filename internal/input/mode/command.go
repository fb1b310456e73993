package mode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/input/key"
	"github.com/dshills/hexstorm/internal/navigation"
)

// MaxBytesPerLine bounds the row width accepted by "set bpl".
const MaxBytesPerLine = 64

// Command reads a command line. Tab cycles through the quick navigation
// positions.
type Command struct {
	input string
	quick int
}

func (Command) Name() string        { return "COMMAND" }
func (Command) HasHalfCursor() bool { return false }
func (Command) TakesInput() bool    { return true }
func (Command) mode()               {}

// Prompt returns the command prompt.
func (m Command) Prompt() (string, string) {
	return ":", m.input
}

// Transition edits the command line or runs it on Enter.
func (m Command) Transition(ev key.Event, bufs *buffer.Collection, _ int) *Transition {
	buf := bufs.Current()
	if buf == nil {
		return nil
	}
	if ev.Is(key.KeyTab) {
		pos := navigation.QuickPositions[m.quick%len(navigation.QuickPositions)]
		return NewMode(Command{input: pos.String(), quick: m.quick + 1})
	}
	if next, done := editLine(m.input, ev); !done {
		if next == m.input {
			return nil
		}
		return NewMode(Command{input: next})
	}

	switch {
	case ev.Is(key.KeyEnter):
		return execute(buf, strings.TrimSpace(m.input))
	case ev.Is(key.KeyBackspace) && m.input != "":
		return NewMode(Command{input: dropLast(m.input)})
	}
	return NewMode(NewNormal())
}

func execute(buf *buffer.Buffer, line string) *Transition {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return NewMode(NewNormal())
	case line == "q" || line == "quit" || line == "q!":
		return NewMode(Quitting{})
	case line == "undo":
		return undo(buf)
	case line == "redo":
		return redo(buf)
	case fields[0] == "set":
		return set(fields[1:])
	case navigation.IsCommand(line):
		cmd, err := navigation.Parse(line)
		if err != nil {
			return NewModeAndInfo(NewNormal(), err.Error())
		}
		return jump(buf, cmd)
	}
	return NewModeAndInfo(NewNormal(), fmt.Sprintf("unknown command: %s", line))
}

// set handles "set bpl N".
func set(args []string) *Transition {
	if len(args) != 2 || (args[0] != "bpl" && args[0] != "bytes_per_line") {
		return NewModeAndInfo(NewNormal(), "usage: set bpl N")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > MaxBytesPerLine {
		return NewModeAndInfo(NewNormal(), fmt.Sprintf("bytes per line must be between 1 and %d", MaxBytesPerLine))
	}
	return &Transition{Mode: NewNormal(), Dirty: buffer.LengthChanged(), BytesPerLine: n}
}
