package app

import (
	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/selection"
	"github.com/dshills/hexstorm/internal/engine/window"
	"github.com/dshills/hexstorm/internal/input/key"
	"github.com/dshills/hexstorm/internal/input/mode"
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

var (
	scrollDownKey = key.MustParse("<C-e>")
	scrollUpKey   = key.MustParse("<C-y>")
)

// applyTransition updates the application after the mode handled an event.
// The status message of the previous transition is replaced.
func (app *Application) applyTransition(t *mode.Transition) {
	app.view.SetInfo(t.Info)
	if t.Mode != nil {
		app.mode = t.Mode
	}
	if t.BytesPerLine > 0 {
		app.view.SetBytesPerLine(t.BytesPerLine)
		app.adoptChunkSize()
	}
	app.redraw(t.Dirty)
}

// redraw invalidates what dirty describes and keeps the main caret on
// screen.
func (app *Application) redraw(dirty buffer.DirtyBytes) {
	buf := app.bufs.Current()
	n := buf.Len()
	caret := buf.Selection().MainCursorOffset()
	bpl := app.view.BytesPerLine()
	start := app.view.Start()

	switch dirty.Kind {
	case buffer.ChangeInPlace:
		// Rows are marked before scrolling so the scroll moves them along.
		app.view.Tracker().MarkIntervals(dirty.Intervals, app.view.Visible(n), bpl)
		app.view.FollowCaret(app.backend, caret, n)
	case buffer.ChangeLength:
		app.view.Reveal(caret, n)
	default:
		return
	}

	switch moved := app.view.Start() - start; {
	case moved > 0:
		app.manageWindow(window.Down)
	case moved < 0:
		app.manageWindow(window.Up)
	}
}

// handleUnbound runs the application's own bindings for keys the mode
// ignored.
func (app *Application) handleUnbound(ev backend.Event) {
	switch {
	case ev.Key.Equals(scrollDownKey):
		app.view.SetInfo("")
		app.scroll(1)
	case ev.Key.Equals(scrollUpKey):
		app.view.SetInfo("")
		app.scroll(-1)
	}
}

// scroll moves the view by lines rows and every region with it, then lets
// the file window follow.
func (app *Application) scroll(lines int) {
	buf := app.bufs.Current()
	n := buf.Len()
	bpl := app.view.BytesPerLine()

	moved := app.view.Scroll(app.backend, lines, n)
	if moved == 0 {
		return
	}

	dir, wdir, count := selection.Down, window.Down, moved
	if moved < 0 {
		dir, wdir, count = selection.Up, window.Up, -moved
	}

	sel := buf.Selection()
	before := sel.Regions()
	sel.MapEach(func(r selection.Region) selection.Region {
		return r.SimpleMove(dir, bpl, n, count)
	})
	app.view.Tracker().MarkIntervals(regionIntervals(before, sel.Regions()), app.view.Visible(n), bpl)

	app.manageWindow(wdir)
}

// manageWindow lets the file window of the current buffer fetch or trim
// after the view moved in dir, and shifts the view so the same file bytes
// stay on screen.
func (app *Application) manageWindow(dir window.Direction) {
	buf := app.bufs.Current()
	change, err := buf.ManageWindow(app.view.Visible(buf.Len()), dir)
	if err != nil {
		app.report(NewOperationError("load", buf.Path(), err))
		return
	}
	if change.IsEmpty() {
		return
	}
	app.log.Debug("window: +%d top, +%d bottom, -%d top, -%d bottom",
		change.Prepended, change.Appended, change.TrimmedTop, change.TrimmedBottom)
	app.view.Shift(change.Shift())
	app.view.Tracker().MarkAll()
}

// resize adopts a new terminal size. The window chunk follows the screen
// height.
func (app *Application) resize(width, height int) {
	app.view.Resize(width, height)
	app.adoptChunkSize()
	buf := app.bufs.Current()
	app.view.Reveal(buf.Selection().MainCursorOffset(), buf.Len())
}

// adoptChunkSize hands the current chunk size to the buffer window. A
// shrinking window may trim bytes, so the view is shifted along.
func (app *Application) adoptChunkSize() {
	buf := app.bufs.Current()
	change := buf.SetChunkSize(app.chunkSize(), app.view.BytesPerLine(), app.view.Visible(buf.Len()))
	if change.IsEmpty() {
		return
	}
	app.view.Shift(change.Shift())
	app.view.Tracker().MarkAll()
}

func (app *Application) chunkSize() int {
	if app.opts.ChunkRows > 0 {
		return app.opts.ChunkRows * app.view.BytesPerLine()
	}
	return app.view.ChunkSize()
}

func regionIntervals(sets ...[]selection.Region) []delta.Interval {
	var ivs []delta.Interval
	for _, rs := range sets {
		for _, r := range rs {
			ivs = append(ivs, delta.Interval{Start: r.Min(), End: r.Max() + 1})
		}
	}
	return ivs
}
