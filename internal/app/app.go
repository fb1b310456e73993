// Package app runs the editor: it owns the terminal backend, the buffer
// collection, the current mode and the hex view, and drives them from a
// single-threaded event loop.
//
// Each event is handed to the current mode. The resulting transition
// switches modes, reports what changed and may carry a status message; the
// application turns that into view scrolling, window management and dirty
// rows, then redraws. Events no mode handles fall through to the
// application's own bindings (scrolling).
package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/input/mode"
	"github.com/dshills/hexstorm/internal/logging"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/hexview"
	"github.com/dshills/hexstorm/internal/renderer/style"
)

// Application is the editor.
type Application struct {
	backend backend.Backend
	bufs    *buffer.Collection
	mode    mode.Mode
	view    *hexview.View
	log     *logging.Logger

	opts Options
}

// Options configures the application.
type Options struct {
	// BytesPerLine is the initial row width.
	BytesPerLine int

	// ChunkRows is the number of rows one window chunk holds. Zero derives
	// it from the terminal height.
	ChunkRows int

	// Theme styles the hex view.
	Theme style.Theme

	// WatchPath, when set, is watched for changes on disk.
	WatchPath string

	// WatchDelay is how long the watched file must settle before a change
	// is reported. Zero uses DefaultSettleDelay.
	WatchDelay time.Duration

	// Logger receives diagnostics. Nil discards.
	Logger *logging.Logger
}

// New creates an application editing bufs on b, starting in Normal mode.
func New(b backend.Backend, bufs *buffer.Collection, opts Options) (*Application, error) {
	if bufs == nil || bufs.Current() == nil {
		return nil, ErrNoBuffer
	}
	if opts.BytesPerLine <= 0 {
		opts.BytesPerLine = hexview.DefaultBytesPerLine
	}
	if opts.Theme == (style.Theme{}) {
		opts.Theme = style.DefaultTheme()
	}
	return &Application{
		backend: b,
		bufs:    bufs,
		mode:    mode.NewNormal(),
		view:    hexview.New(opts.Theme, opts.BytesPerLine),
		log:     opts.Logger.WithComponent("app"),
		opts:    opts,
	}, nil
}

// Run initializes the backend and processes events until the mode stops
// taking input, the backend runs out of events or Quit is called. The
// backend is shut down on return, also when a panic is recovered, in which
// case the panic is returned as a *RecoveredPanicError.
func (app *Application) Run() (err error) {
	if err := app.backend.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer app.backend.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			perr := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.log.Error("recovered: %v", r)
			err = perr
		}
	}()

	if app.opts.WatchPath != "" {
		w, werr := NewFileWatcher(app.opts.WatchPath, app.backend, app.opts.WatchDelay, app.opts.Logger)
		if werr != nil {
			app.log.Warn("not watching %s: %v", app.opts.WatchPath, werr)
		} else {
			defer w.Close()
		}
	}

	app.resize(app.backend.Size())
	app.draw()

	for app.mode.TakesInput() {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventClosed {
			app.log.Debug("backend closed")
			return nil
		}
		if err := app.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		app.draw()
	}
	return nil
}

// quitRequest is posted by Quit.
type quitRequest struct{}

// Quit asks a running event loop to stop. It is safe to call from any
// goroutine.
func (app *Application) Quit() {
	app.backend.PostEvent(backend.InterruptEvent(quitRequest{}))
}

// HandleEvent processes one backend event. It returns ErrQuit when the loop
// should stop.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		t := app.mode.Transition(ev.Key, app.bufs, app.view.BytesPerLine())
		if t == nil {
			app.handleUnbound(ev)
			return nil
		}
		app.applyTransition(t)
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	case backend.EventError:
		app.report(NewOperationError("read", "terminal", ev.Err))
	}
	return nil
}

func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case quitRequest:
		return ErrQuit
	case FileChange:
		app.fileChanged(d)
	}
	return nil
}

// fileChanged reloads a pristine buffer from disk and only reports the
// change for a modified one.
func (app *Application) fileChanged(c FileChange) {
	buf := app.bufs.Current()
	if c.Removed {
		app.view.SetInfo(fmt.Sprintf("%s was removed on disk", buf.Name()))
		return
	}
	dirty, err := buf.Refresh()
	switch {
	case errors.Is(err, buffer.ErrWindowPinned):
		app.view.SetInfo(fmt.Sprintf("%s changed on disk", buf.Name()))
		return
	case err != nil:
		app.report(NewOperationError("reload", c.Path, err))
		return
	}
	app.redraw(dirty)
	app.view.SetInfo(fmt.Sprintf("reloaded %s", buf.Name()))
}

// report logs err and shows it in the status line.
func (app *Application) report(err error) {
	app.log.Error("%v", err)
	app.view.SetInfo(err.Error())
}

// Mode returns the current mode.
func (app *Application) Mode() mode.Mode {
	return app.mode
}

// View returns the hex view.
func (app *Application) View() *hexview.View {
	return app.view
}

// Buffers returns the buffer collection.
func (app *Application) Buffers() *buffer.Collection {
	return app.bufs
}

// State returns what the next frame is drawn from.
func (app *Application) State() hexview.State {
	st := hexview.State{
		Snapshot:   app.bufs.Current().Snapshot(),
		ModeName:   app.mode.Name(),
		HalfCursor: app.mode.HasHalfCursor(),
	}
	if p, ok := app.mode.(mode.Prompter); ok {
		label, input := p.Prompt()
		st.Prompt = &hexview.Prompt{Label: label, Input: input}
	}
	return st
}

func (app *Application) draw() {
	app.view.Draw(app.backend, app.State())
}
