package logger

import (
	"os"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// defaultCallerSkip points GetCaller at the caller of Log or a level helper
const defaultCallerSkip = 3

// Builder provides a fluent API for building a Repository
type Builder struct {
	handler       handler.Handler
	rootLevel     core.Level
	includeCaller bool
	callerSkip    int
	coarseClock   bool
}

// NewBuilder creates a new repository builder
func NewBuilder() *Builder {
	return &Builder{
		rootLevel:  core.InfoLevel,
		callerSkip: defaultCallerSkip,
	}
}

// WithHandler sets the handler every logger of the repository writes to
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithRootLevel sets the initial root floor
func (b *Builder) WithRootLevel(level core.Level) *Builder {
	b.rootLevel = level
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip skips extra frames above the caller of Log, for callers
// that always log through a wrapper.
func (b *Builder) WithCallerSkip(extra int) *Builder {
	b.callerSkip = defaultCallerSkip + extra
	return b
}

// WithCoarseClock stamps entries from the cached clock in package core
// instead of calling time.Now for every entry.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Repository
func (b *Builder) Build() *Repository {
	if b.coarseClock {
		core.StartCoarseClock()
	}
	r := &Repository{
		handler:       b.handler,
		floor:         backend.NewFloor(b.rootLevel),
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		coarseClock:   b.coarseClock,
	}
	if b.handler != nil {
		if rc, ok := b.handler.(handler.Recycler); ok {
			r.recycleEntry = rc.CanRecycleEntry()
		}
	}
	return r
}

// Repository owns the named loggers of the native engine. It implements
// backend.Provider.
type Repository struct {
	handler       handler.Handler
	recycleEntry  bool
	floor         *backend.Floor
	loggers       backend.Streams[*Logger]
	includeCaller bool
	callerSkip    int
	coarseClock   bool
}

var _ backend.Provider = (*Repository)(nil)

// Logger returns the logger for name, creating it on first use. The same
// name always yields the same *Logger.
func (r *Repository) Logger(name string) (*Logger, error) {
	return r.loggers.Get(name, func(name string) (*Logger, error) {
		return &Logger{repo: r, name: name, gate: backend.NewGate(r.floor)}, nil
	})
}

// Stream implements backend.Provider
func (r *Repository) Stream(name string) (backend.Stream, error) {
	l, err := r.Logger(name)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// RootLevel returns the root floor
func (r *Repository) RootLevel() core.Level {
	return r.floor.Get()
}

// SetRootLevel moves the root floor
func (r *Repository) SetRootLevel(level core.Level) {
	r.floor.Set(level)
}

// Close closes the repository's handler
func (r *Repository) Close() error {
	if r.handler != nil {
		return r.handler.Close()
	}
	return nil
}

// Logger is one named logger of a Repository. It implements backend.Stream.
type Logger struct {
	repo *Repository
	name string
	gate *backend.Gate
}

var _ backend.Stream = (*Logger)(nil)

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Enabled reports whether a message at level would be written
func (l *Logger) Enabled(level core.Level) bool {
	return l.gate.Enabled(level)
}

// Level returns the logger's own level, or the root floor when it has none
func (l *Logger) Level() core.Level {
	return l.gate.Level()
}

// SetLevel sets the logger's own level
func (l *Logger) SetLevel(level core.Level) {
	l.gate.SetLevel(level)
}

// Log logs a message at the specified level. params are substituted into
// msg by the formatter.
func (l *Logger) Log(level core.Level, msg string, cause error, params ...any) {
	// Level check before any allocation
	if !l.gate.Enabled(level) {
		return
	}
	l.log(level, msg, cause, params)
}

func (l *Logger) log(level core.Level, msg string, cause error, params []any) {
	r := l.repo
	if r.handler == nil {
		return
	}

	entry := core.GetEntry()
	if r.coarseClock {
		entry.Time = core.CoarseNow()
	}
	entry.Level = level
	entry.Logger = l.name
	entry.Message = msg
	entry.Params = params
	entry.Cause = cause

	if r.includeCaller {
		entry.Caller = core.GetCaller(r.callerSkip)
	}

	// write failures are counted by the handler
	_ = r.handler.Handle(entry)

	if r.recycleEntry {
		core.PutEntry(entry)
	}
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, params ...any) {
	if !l.gate.Enabled(core.TraceLevel) {
		return
	}
	l.log(core.TraceLevel, msg, nil, params)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, params ...any) {
	if !l.gate.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, msg, nil, params)
}

// Info logs an info message
func (l *Logger) Info(msg string, params ...any) {
	if !l.gate.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, msg, nil, params)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, params ...any) {
	if !l.gate.Enabled(core.WarnLevel) {
		return
	}
	l.log(core.WarnLevel, msg, nil, params)
}

// Error logs an error message with an optional cause
func (l *Logger) Error(msg string, cause error, params ...any) {
	if !l.gate.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, cause, params)
}

// Fatal logs a fatal message and exits the program with os.Exit(1).
// The message is written even when the level is disabled.
func (l *Logger) Fatal(msg string, cause error, params ...any) {
	l.log(core.FatalLevel, msg, cause, params)
	osExit(1)
}
