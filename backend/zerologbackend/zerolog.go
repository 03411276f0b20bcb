// Package zerologbackend serves facade streams from github.com/rs/zerolog.
package zerologbackend

import (
	"github.com/rs/zerolog"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
)

// LoggerField is the event field that carries the stream name.
const LoggerField = "logger"

// LevelToZerolog maps a message level to zerolog.
func LevelToZerolog(l core.Level) zerolog.Level {
	switch l {
	case core.TraceLevel:
		return zerolog.TraceLevel
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	case core.ErrorLevel:
		return zerolog.ErrorLevel
	case core.FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Provider derives one child zerolog.Logger per stream name.
type Provider struct {
	base    zerolog.Logger
	floor   *backend.Floor
	streams backend.Streams[*Stream]
}

var _ backend.Provider = (*Provider)(nil)

// New creates a provider over base. The base level is opened to trace;
// stream gates decide what is written. The global zerolog level still
// applies.
func New(base zerolog.Logger, rootLevel core.Level) *Provider {
	return &Provider{
		base:  base.Level(zerolog.TraceLevel),
		floor: backend.NewFloor(rootLevel),
	}
}

// Stream implements backend.Provider
func (p *Provider) Stream(name string) (backend.Stream, error) {
	s, err := p.streams.Get(name, func(name string) (*Stream, error) {
		return &Stream{
			name: name,
			log:  p.base.With().Str(LoggerField, name).Logger(),
			gate: backend.NewGate(p.floor),
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

// Stream is a zerolog child logger carrying the stream name.
type Stream struct {
	name string
	log  zerolog.Logger
	gate *backend.Gate
}

// Name returns the stream name
func (s *Stream) Name() string { return s.name }

// Enabled reports whether a message at level would be written
func (s *Stream) Enabled(level core.Level) bool { return s.gate.Enabled(level) }

// Level returns the effective threshold
func (s *Stream) Level() core.Level { return s.gate.Level() }

// SetLevel sets the stream's own threshold
func (s *Stream) SetLevel(level core.Level) { s.gate.SetLevel(level) }

// Log writes msg through zerolog. WithLevel is used so FATAL never exits.
func (s *Stream) Log(level core.Level, msg string, cause error, params ...any) {
	if !s.gate.Enabled(level) {
		return
	}
	ev := s.log.WithLevel(LevelToZerolog(level))
	if ev == nil {
		return
	}
	if cause != nil {
		ev = ev.Err(cause)
	}
	if len(params) > 0 {
		ev.Msgf(msg, params...)
		return
	}
	ev.Msg(msg)
}
