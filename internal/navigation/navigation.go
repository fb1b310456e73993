// Package navigation parses percentage jump commands.
//
// A command is one of:
//
//	start    first byte of the file
//	end      last byte of the file
//	N%       N percent into the file
//	+N%      N percent of the file past the current position
//	-N%      N percent of the file before the current position
//
// N is an integer from 0 to 100. Targets are file offsets, so a command
// resolves the same way no matter which part of the file is loaded.
package navigation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by Parse.
var (
	ErrInvalidCommand = errors.New("invalid navigation command")
	ErrOutOfRange     = errors.New("percentage out of range")
)

// Kind identifies a navigation command.
type Kind uint8

const (
	Start Kind = iota
	End
	Absolute
	Forward
	Backward
)

// Command is a parsed navigation command.
type Command struct {
	Kind    Kind
	Percent int
}

// QuickPositions lists the jump targets offered without typing a percentage.
var QuickPositions = []Command{
	{Kind: Start},
	{Kind: Absolute, Percent: 25},
	{Kind: Absolute, Percent: 50},
	{Kind: Absolute, Percent: 75},
	{Kind: End},
}

// Parse parses a navigation command. Surrounding whitespace and case are
// ignored.
func Parse(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "start":
		return Command{Kind: Start}, nil
	case "end":
		return Command{Kind: End}, nil
	}

	body, ok := strings.CutSuffix(s, "%")
	if !ok || body == "" {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
	}

	kind := Absolute
	switch body[0] {
	case '+':
		kind, body = Forward, body[1:]
	case '-':
		kind, body = Backward, body[1:]
	}
	if body == "" || body[0] == '+' || body[0] == '-' {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
	}

	n, err := strconv.Atoi(body)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Command{}, fmt.Errorf("%w: %s", ErrOutOfRange, s)
		}
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
	}
	if n < 0 || n > 100 {
		return Command{}, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	return Command{Kind: kind, Percent: n}, nil
}

// IsCommand reports whether s looks like a navigation command, so a command
// line can route it here before trying other commands.
func IsCommand(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "start" || s == "end" || strings.HasSuffix(s, "%")
}

// Target resolves the command to a file offset. current is the file offset of
// the caret and size the file size. The result is a byte of the file, or 0
// for an empty file.
func (c Command) Target(current, size int) int {
	if size <= 0 {
		return 0
	}
	last := size - 1
	var off int
	switch c.Kind {
	case Start:
		off = 0
	case End:
		off = last
	case Absolute:
		off = percentOf(size, c.Percent)
	case Forward:
		off = current + percentOf(size, c.Percent)
	case Backward:
		off = current - percentOf(size, c.Percent)
	}
	return max(0, min(off, last))
}

func percentOf(size, percent int) int {
	return int(int64(size) * int64(percent) / 100)
}

// String returns the command in the form Parse accepts.
func (c Command) String() string {
	switch c.Kind {
	case Start:
		return "start"
	case End:
		return "end"
	case Forward:
		return fmt.Sprintf("+%d%%", c.Percent)
	case Backward:
		return fmt.Sprintf("-%d%%", c.Percent)
	default:
		return fmt.Sprintf("%d%%", c.Percent)
	}
}
