// Package slogbackend serves facade streams from any log/slog handler,
// including handler.SlogHandler over the native pipeline.
package slogbackend

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/handler"
)

// slog has no trace or fatal levels; these sit one step beyond Debug and Error.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelFatal = slog.LevelError + 4
)

// LevelToSlog maps a message level to slog.
func LevelToSlog(l core.Level) slog.Level {
	switch l {
	case core.TraceLevel:
		return LevelTrace
	case core.DebugLevel:
		return slog.LevelDebug
	case core.WarnLevel:
		return slog.LevelWarn
	case core.ErrorLevel:
		return slog.LevelError
	case core.FatalLevel:
		return LevelFatal
	default:
		return slog.LevelInfo
	}
}

// Option configures a Provider.
type Option func(*Provider)

// WithCallerSkip skips extra frames above the caller of Stream.Log when
// recording the source position.
func WithCallerSkip(extra int) Option {
	return func(p *Provider) { p.callerSkip += extra }
}

// Provider derives one slog handler per stream, tagged with the stream name
// under handler.LoggerKey.
type Provider struct {
	handler    slog.Handler
	floor      *backend.Floor
	callerSkip int
	streams    backend.Streams[*Stream]
}

var _ backend.Provider = (*Provider)(nil)

// New creates a provider over h. Gating happens in the provider; h is
// still asked via Enabled before each record.
func New(h slog.Handler, rootLevel core.Level, opts ...Option) *Provider {
	p := &Provider{
		handler: h,
		floor:   backend.NewFloor(rootLevel),
		// runtime.Callers, Stream.Log
		callerSkip: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stream implements backend.Provider
func (p *Provider) Stream(name string) (backend.Stream, error) {
	s, err := p.streams.Get(name, func(name string) (*Stream, error) {
		return &Stream{
			name:       name,
			handler:    p.handler.WithAttrs([]slog.Attr{slog.String(handler.LoggerKey, name)}),
			gate:       backend.NewGate(p.floor),
			callerSkip: p.callerSkip,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RootLevel returns the root floor
func (p *Provider) RootLevel() core.Level {
	return p.floor.Get()
}

// SetRootLevel moves the root floor
func (p *Provider) SetRootLevel(level core.Level) {
	p.floor.Set(level)
}

// Stream writes records to a slog handler.
type Stream struct {
	name       string
	handler    slog.Handler
	gate       *backend.Gate
	callerSkip int
}

// Name returns the stream name
func (s *Stream) Name() string { return s.name }

// Enabled reports whether a message at level would be written
func (s *Stream) Enabled(level core.Level) bool { return s.gate.Enabled(level) }

// Level returns the effective threshold
func (s *Stream) Level() core.Level { return s.gate.Level() }

// SetLevel sets the stream's own threshold
func (s *Stream) SetLevel(level core.Level) { s.gate.SetLevel(level) }

// Logger returns a *slog.Logger writing to the stream's handler.
func (s *Stream) Logger() *slog.Logger { return slog.New(s.handler) }

// Log builds a slog.Record and hands it to the handler. A non-nil cause
// is attached as the "error" attribute.
func (s *Stream) Log(level core.Level, msg string, cause error, params ...any) {
	if !s.gate.Enabled(level) {
		return
	}
	ctx := context.Background()
	lvl := LevelToSlog(level)
	if !s.handler.Enabled(ctx, lvl) {
		return
	}
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}

	var pcs [1]uintptr
	runtime.Callers(s.callerSkip, pcs[:])
	r := slog.NewRecord(time.Now(), lvl, msg, pcs[0])
	if cause != nil {
		r.AddAttrs(slog.Any("error", cause))
	}
	_ = s.handler.Handle(ctx, r)
}
