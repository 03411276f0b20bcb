// Package zapbackend serves facade streams from go.uber.org/zap.
package zapbackend

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
)

// TraceLevel is the zap level used for core.TraceLevel. zap has no trace
// level of its own.
const TraceLevel = zapcore.DebugLevel - 1

// LevelToZap maps a message level to zap. FATAL becomes DPanic so that a
// fatal facade message never terminates the process.
func LevelToZap(l core.Level) zapcore.Level {
	switch l {
	case core.TraceLevel:
		return TraceLevel
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.FatalLevel:
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// Provider resolves one named *zap.Logger per stream over a shared core.
type Provider struct {
	base    *zap.Logger
	floor   *backend.Floor
	streams backend.Streams[*Stream]
}

var _ backend.Provider = (*Provider)(nil)

// New creates a provider writing to c. Gating happens in the provider, so
// c should enable TraceLevel and above. opts are applied to every stream,
// e.g. zap.AddCaller().
func New(c zapcore.Core, rootLevel core.Level, opts ...zap.Option) *Provider {
	return &Provider{
		base:  zap.New(c, opts...),
		floor: backend.NewFloor(rootLevel),
	}
}

func allLevels(zapcore.Level) bool { return true }

// NewJSON creates a provider writing production-style JSON to w.
func NewJSON(w io.Writer, rootLevel core.Level, opts ...zap.Option) *Provider {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.LevelEnablerFunc(allLevels)), rootLevel, opts...)
}

// NewConsole creates a provider writing human-readable lines to w.
func NewConsole(w io.Writer, rootLevel core.Level, opts ...zap.Option) *Provider {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = encodeLevel
	enc := zapcore.NewConsoleEncoder(cfg)
	return New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.LevelEnablerFunc(allLevels)), rootLevel, opts...)
}

// encodeLevel prints TRACE for TraceLevel instead of zap's "LEVEL(-2)".
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

// Stream implements backend.Provider
func (p *Provider) Stream(name string) (backend.Stream, error) {
	s, err := p.streams.Get(name, func(name string) (*Stream, error) {
		return &Stream{
			name: name,
			log:  p.base.Named(name),
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

// Sync flushes buffered output of the underlying core.
func (p *Provider) Sync() error {
	return p.base.Sync()
}

// Stream is a named zap logger behind a level gate.
type Stream struct {
	name string
	log  *zap.Logger
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

// Zap returns the underlying logger.
func (s *Stream) Zap() *zap.Logger { return s.log }

// Log writes msg with params substituted. A non-nil cause is attached as
// the "error" field.
func (s *Stream) Log(level core.Level, msg string, cause error, params ...any) {
	if !s.gate.Enabled(level) {
		return
	}
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	ce := s.log.Check(LevelToZap(level), msg)
	if ce == nil {
		return
	}
	if cause != nil {
		ce.Write(zap.Error(cause))
		return
	}
	ce.Write()
}
