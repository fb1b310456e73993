// Package mode implements the modal front end of the editor.
//
// A Mode turns key events into edits and selection changes on the current
// buffer and reports the outcome as a Transition:
//
//   - nil: the mode did not handle the event; the application may still
//     act on it (scrolling)
//   - NoTransition: handled, nothing to redraw
//   - Dirty: bytes or selections changed
//   - NewMode: switch modes
//   - NewModeAndDirty: switch modes after changing bytes
//   - NewModeAndInfo: switch modes and show a status message
//
// The set of modes is closed: Normal, Insert, Replace, Search, Command and
// Quitting. Modes are immutable values; a mode with state such as a pending
// count or a half-typed hex byte returns a new value of itself.
package mode
