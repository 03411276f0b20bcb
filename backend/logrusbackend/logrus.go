// Package logrusbackend serves facade streams from github.com/sirupsen/logrus.
package logrusbackend

import (
	"github.com/sirupsen/logrus"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
)

// LoggerField is the entry field that carries the stream name.
const LoggerField = "logger"

// LevelToLogrus maps a message level to logrus.
func LevelToLogrus(l core.Level) logrus.Level {
	switch l {
	case core.TraceLevel:
		return logrus.TraceLevel
	case core.DebugLevel:
		return logrus.DebugLevel
	case core.WarnLevel:
		return logrus.WarnLevel
	case core.ErrorLevel:
		return logrus.ErrorLevel
	case core.FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Provider hands out entries of one shared *logrus.Logger, one per stream
// name.
type Provider struct {
	log     *logrus.Logger
	floor   *backend.Floor
	streams backend.Streams[*Stream]
}

var _ backend.Provider = (*Provider)(nil)

// New creates a provider over l. The logger's own level is opened to
// trace; stream gates decide what is written.
func New(l *logrus.Logger, rootLevel core.Level) *Provider {
	l.SetLevel(logrus.TraceLevel)
	return &Provider{
		log:   l,
		floor: backend.NewFloor(rootLevel),
	}
}

// Stream implements backend.Provider
func (p *Provider) Stream(name string) (backend.Stream, error) {
	s, err := p.streams.Get(name, func(name string) (*Stream, error) {
		return &Stream{
			name:  name,
			entry: p.log.WithField(LoggerField, name),
			gate:  backend.NewGate(p.floor),
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

// Stream is a logrus entry carrying the stream name.
type Stream struct {
	name  string
	entry *logrus.Entry
	gate  *backend.Gate
}

// Name returns the stream name
func (s *Stream) Name() string { return s.name }

// Enabled reports whether a message at level would be written
func (s *Stream) Enabled(level core.Level) bool { return s.gate.Enabled(level) }

// Level returns the effective threshold
func (s *Stream) Level() core.Level { return s.gate.Level() }

// SetLevel sets the stream's own threshold
func (s *Stream) SetLevel(level core.Level) { s.gate.SetLevel(level) }

// Log writes msg through logrus. Entry.Log never exits, even at FATAL.
func (s *Stream) Log(level core.Level, msg string, cause error, params ...any) {
	if !s.gate.Enabled(level) {
		return
	}
	e := s.entry
	if cause != nil {
		e = e.WithError(cause)
	}
	if len(params) > 0 {
		e.Logf(LevelToLogrus(level), msg, params...)
		return
	}
	e.Log(LevelToLogrus(level), msg)
}
