package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/backend/logrusbackend"
	"github.com/philipp01105/chanlog/backend/slogbackend"
	"github.com/philipp01105/chanlog/backend/zapbackend"
	"github.com/philipp01105/chanlog/backend/zerologbackend"
	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/facade"
	"github.com/philipp01105/chanlog/formatter"
	"github.com/philipp01105/chanlog/handler"
	"github.com/philipp01105/chanlog/logger"
)

// Console is where the "stdout" and "stderr" outputs go.
type Console struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Engine is an opened backend with the resources it writes to.
type Engine struct {
	Provider backend.Provider
	closers  []func() error
}

// Close flushes and releases the engine's outputs.
func (e *Engine) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Open validates c and builds the engine it selects. The root level is
// set; component settings are applied separately with Apply.
func Open(c Config, console Console) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if console.Stdout == nil {
		console.Stdout = os.Stdout
	}
	if console.Stderr == nil {
		console.Stderr = os.Stderr
	}
	root, _ := facade.ParseLevel(c.RootLevel)
	rootLevel, _ := facade.ToBackend(root)

	e := &Engine{}
	var err error
	switch c.Backend {
	case "native":
		err = e.openNative(c, console, rootLevel)
	default:
		err = e.openForeign(c, console, rootLevel)
	}
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

func (c Config) formatter() formatter.Formatter {
	fc := formatter.Config{IncludeCaller: c.Caller}
	switch c.Format {
	case "json":
		return formatter.NewJSONFormatter(fc)
	case "cbor":
		return formatter.NewCBORFormatter(fc)
	default:
		return formatter.NewTextFormatter(fc)
	}
}

// nativeHandler builds the handler for one output of the native engine.
func (e *Engine) nativeHandler(c Config, console Console, output string) (handler.Handler, error) {
	switch output {
	case "stdout", "stderr":
		w := console.Stdout
		if output == "stderr" {
			w = console.Stderr
		}
		return handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:    w,
			Formatter: c.formatter(),
			Async:     c.Async,
		}), nil
	default:
		fh, err := handler.NewFileHandler(handler.FileConfig{
			Filename:   output,
			Formatter:  c.formatter(),
			Async:      c.Async,
			MaxSize:    c.File.MaxSize,
			MaxAge:     c.File.MaxAge,
			MaxBackups: c.File.MaxBackups,
		})
		if err != nil {
			return nil, err
		}
		return fh, nil
	}
}

func (e *Engine) openNative(c Config, console Console, root core.Level) error {
	h, err := e.nativeHandler(c, console, c.Output)
	if err != nil {
		return err
	}
	if len(c.ChannelOutputs) > 0 {
		router := handler.NewRouteHandler(h)
		for _, ch := range channels {
			out, ok := c.ChannelOutputs[ch]
			if !ok {
				continue
			}
			chh, err := e.nativeHandler(c, console, out)
			if err != nil {
				_ = router.Close()
				return fmt.Errorf("config: channel %s: %w", ch, err)
			}
			router.Route(ch, chh)
		}
		h = router
	}

	repo := logger.NewBuilder().
		WithHandler(h).
		WithRootLevel(root).
		WithCaller(c.Caller).
		WithCallerSkip(facade.CallerSkip).
		Build()
	e.Provider = repo
	e.closers = append(e.closers, repo.Close)
	return nil
}

// writer opens the output of a non-native engine.
func (e *Engine) writer(c Config, console Console) (io.Writer, error) {
	switch c.Output {
	case "stdout":
		return console.Stdout, nil
	case "stderr":
		return console.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Output), 0o755); err != nil {
		return nil, fmt.Errorf("config: create log directory: %w", err)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", c.Output, err)
	}
	e.closers = append(e.closers, f.Close)
	return f, nil
}

func (e *Engine) openForeign(c Config, console Console, root core.Level) error {
	w, err := e.writer(c, console)
	if err != nil {
		return err
	}

	switch c.Backend {
	case "zap":
		var opts []zap.Option
		if c.Caller {
			// Stream.Log plus the facade frames
			opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1+facade.CallerSkip))
		}
		var p *zapbackend.Provider
		if c.Format == "json" {
			p = zapbackend.NewJSON(w, root, opts...)
		} else {
			p = zapbackend.NewConsole(w, root, opts...)
		}
		e.Provider = p
		e.closers = append(e.closers, func() error {
			// syncing a terminal fails with EINVAL on some platforms
			_ = p.Sync()
			return nil
		})

	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		if c.Format == "json" {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		}
		e.Provider = logrusbackend.New(l, root)

	case "zerolog":
		out := w
		if c.Format != "json" {
			out = zerolog.ConsoleWriter{Out: w, NoColor: true}
		}
		e.Provider = zerologbackend.New(zerolog.New(out).With().Timestamp().Logger(), root)

	case "slog":
		opts := &slog.HandlerOptions{Level: slogbackend.LevelTrace, AddSource: c.Caller}
		var h slog.Handler
		if c.Format == "json" {
			h = slog.NewJSONHandler(w, opts)
		} else {
			h = slog.NewTextHandler(w, opts)
		}
		e.Provider = slogbackend.New(h, root, slogbackend.WithCallerSkip(facade.CallerSkip))
	}
	return nil
}
