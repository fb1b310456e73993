// Package main is the entry point for the hexstorm editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/hexstorm/internal/app"
	"github.com/dshills/hexstorm/internal/clipboard"
	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/window"
	"github.com/dshills/hexstorm/internal/logging"
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// fallbackRows sizes the first chunk when the terminal size is unknown.
const fallbackRows = 24

type flags struct {
	configPath string
	logLevel   string
	path       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: hexstorm needs a terminal on stdout")
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log, closer, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Info("hexstorm %s starting", version)

	rows := fallbackRows
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 1 {
		rows = h - 1
	}

	buf, src, err := openBuffer(opts.path, cfg, rows, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if src != nil {
		defer src.Close()
	}

	bufs := buffer.NewCollection(buf)
	// A missing system clipboard is logged by New and not fatal.
	reg, _ := clipboard.New(cfg.ClipboardMethod(), log)
	bufs.SetRegister(reg)

	theme, err := cfg.BuildTheme()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	appOpts := app.Options{
		BytesPerLine: cfg.BytesPerLine,
		ChunkRows:    cfg.ChunkRows,
		Theme:        theme,
		Logger:       log,
	}
	if src != nil && cfg.WatchFile {
		appOpts.WatchPath = src.Path()
	}

	t, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application, err := app.New(t, bufs, appOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.Quit()
		}
	}()

	if err := application.Run(); err != nil {
		log.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("hexstorm exiting")
	return 0
}

// openLog returns a logger writing to the configured log file, or a
// discarding logger when none is set.
func openLog(cfg config.Config) (*logging.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logging.Discard(), nil, nil
	}
	return logging.OpenFile(cfg.LogFile, cfg.Level())
}

// openBuffer opens path through a file window, or an empty scratch buffer
// when no path was given.
func openBuffer(path string, cfg config.Config, rows int, log *logging.Logger) (*buffer.Buffer, *window.FileSource, error) {
	bufOpts := []buffer.Option{
		buffer.WithHistoryLimit(cfg.HistoryLimit),
		buffer.WithLogger(log),
	}
	if path == "" {
		return buffer.FromBytes(nil, bufOpts...), nil, nil
	}

	src, err := window.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	bufOpts = append(bufOpts, buffer.WithName(filepath.Base(path)))
	buf, err := buffer.Open(src, cfg.ChunkSize(rows), cfg.BytesPerLine, bufOpts...)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	return buf, src, nil
}

func parseFlags() flags {
	var opts flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hexstorm - modal hex editor for large files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hexstorm [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfiguration is read from %s\n", config.DefaultPath())
		fmt.Fprintf(os.Stderr, "and overridden by %s* environment variables.\n", config.EnvPrefix)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("hexstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: hexstorm opens a single file")
		os.Exit(1)
	}
	opts.path = flag.Arg(0)
	return opts
}
