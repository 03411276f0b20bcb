package facade

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
)

// Side channel names. A channel's stream is named "<channel>.<qualified
// name>" after the facade's identity.
const (
	ErrorChannel   = "errors"
	AuditChannel   = "audit"
	MetricsChannel = "metrics"
)

// CallerSkip is the number of frames every facade write puts between its
// caller and backend.Stream.Log. Engines that record call sites skip them.
const CallerSkip = 2

func knownChannel(name string) bool {
	return name == ErrorChannel || name == AuditChannel || name == MetricsChannel
}

type resolved struct {
	stream backend.Stream
}

// Facade logs on behalf of one component. Its primary stream is resolved
// on first use and kept; side channels exist only once enabled.
//
// Write and query methods panic with ErrNoIdentity when neither a type nor
// a name is set, and with a *ResolveError when the backend rejects the
// stream name. Primary, Resolve and EnableChannel return those errors
// instead.
//
// A Facade is safe for concurrent use.
type Facade struct {
	provider backend.Provider

	idMu sync.RWMutex
	id   Identity

	primary atomic.Pointer[resolved]

	chMu     sync.RWMutex
	channels map[string]backend.Stream
}

// New creates a facade over p for id. id may be zero and set later with
// SetType or SetName.
func New(p backend.Provider, id Identity) *Facade {
	return &Facade{
		provider: p,
		id:       id,
		channels: make(map[string]backend.Stream),
	}
}

// SetType sets the facade's type identity. Pointer types are dereferenced.
// Streams already resolved keep their names.
func (f *Facade) SetType(t reflect.Type) *Facade {
	f.idMu.Lock()
	f.id.typ = baseType(t)
	f.idMu.Unlock()
	return f
}

// SetName sets the facade's name identity. A type identity, when set,
// still takes precedence. Streams already resolved keep their names.
func (f *Facade) SetName(name string) *Facade {
	f.idMu.Lock()
	f.id.name = name
	f.idMu.Unlock()
	return f
}

// Identity returns the current identity
func (f *Facade) Identity() Identity {
	f.idMu.RLock()
	defer f.idMu.RUnlock()
	return f.id
}

// Provider returns the backend the facade resolves streams from
func (f *Facade) Provider() backend.Provider {
	return f.provider
}

// Primary returns the primary stream, resolving it on first call.
// Concurrent first calls may each resolve, but all of them return the
// same handle.
func (f *Facade) Primary() (backend.Stream, error) {
	if r := f.primary.Load(); r != nil {
		return r.stream, nil
	}

	id := f.Identity()
	if id.IsZero() {
		return nil, ErrNoIdentity
	}
	name := id.QualifiedName()
	s, err := f.provider.Stream(name)
	if err != nil {
		return nil, &ResolveError{Name: name, Err: err}
	}

	r := &resolved{stream: s}
	if !f.primary.CompareAndSwap(nil, r) {
		r = f.primary.Load()
	}
	return r.stream, nil
}

// Resolve resolves the primary stream and reports any failure, for callers
// that want configuration errors at startup rather than at first write.
func (f *Facade) Resolve() error {
	_, err := f.Primary()
	return err
}

func (f *Facade) mustPrimary() backend.Stream {
	s, err := f.Primary()
	if err != nil {
		panic(err)
	}
	return s
}

// Channel returns the stream of an enabled side channel.
func (f *Facade) Channel(name string) (backend.Stream, bool) {
	f.chMu.RLock()
	s, ok := f.channels[name]
	f.chMu.RUnlock()
	return s, ok
}

// EnableChannel enables a side channel, resolving its stream. Enabling an
// enabled channel returns the stream already in use.
func (f *Facade) EnableChannel(name string) (backend.Stream, error) {
	if !knownChannel(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	if s, ok := f.Channel(name); ok {
		return s, nil
	}

	id := f.Identity()
	if id.IsZero() {
		return nil, ErrNoIdentity
	}
	key := ChannelKey(name, id)
	s, err := f.provider.Stream(key)
	if err != nil {
		return nil, &ResolveError{Name: key, Err: err}
	}

	f.chMu.Lock()
	defer f.chMu.Unlock()
	if existing, ok := f.channels[name]; ok {
		return existing, nil
	}
	f.channels[name] = s
	return s, nil
}

func (f *Facade) mustEnable(name string) backend.Stream {
	s, err := f.EnableChannel(name)
	if err != nil {
		panic(err)
	}
	return s
}

// EnableErrorLogger enables the error channel
func (f *Facade) EnableErrorLogger() backend.Stream { return f.mustEnable(ErrorChannel) }

// EnableAuditLogger enables the audit channel
func (f *Facade) EnableAuditLogger() backend.Stream { return f.mustEnable(AuditChannel) }

// EnableMetricsLogger enables the metrics channel
func (f *Facade) EnableMetricsLogger() backend.Stream { return f.mustEnable(MetricsChannel) }

// IsErrorLoggerEnabled reports whether the error channel is enabled
func (f *Facade) IsErrorLoggerEnabled() bool {
	_, ok := f.Channel(ErrorChannel)
	return ok
}

// IsAuditLoggerEnabled reports whether the audit channel is enabled
func (f *Facade) IsAuditLoggerEnabled() bool {
	_, ok := f.Channel(AuditChannel)
	return ok
}

// IsMetricsLoggerEnabled reports whether the metrics channel is enabled
func (f *Facade) IsMetricsLoggerEnabled() bool {
	_, ok := f.Channel(MetricsChannel)
	return ok
}

// IsDebugEnabled reports whether the primary stream writes DEBUG messages.
func (f *Facade) IsDebugEnabled() bool {
	return f.mustPrimary().Enabled(core.DebugLevel)
}

// IsTraceEnabled reports whether the primary stream writes TRACE messages.
func (f *Facade) IsTraceEnabled() bool {
	return f.mustPrimary().Enabled(core.TraceLevel)
}

// IsMetricsDebugEnabled reports whether the metrics channel is enabled and
// writes DEBUG messages.
func (f *Facade) IsMetricsDebugEnabled() bool {
	s, ok := f.Channel(MetricsChannel)
	return ok && s.Enabled(core.DebugLevel)
}

// Level returns the primary stream's effective level.
func (f *Facade) Level() (Level, error) {
	s, err := f.Primary()
	if err != nil {
		return LevelInfo, err
	}
	return ToAbstract(s.Level()), nil
}

// SetLevel sets the primary stream's level and raises the provider's root
// floor when level is more verbose than it. A level without a backend
// equivalent leaves everything unchanged.
func (f *Facade) SetLevel(level Level) error {
	bl, ok := ToBackend(level)
	if !ok {
		return nil
	}
	s, err := f.Primary()
	if err != nil {
		return err
	}
	s.SetLevel(bl)
	raiseRootFloor(f.provider, bl)
	return nil
}

// Debug writes a DEBUG message to the primary stream.
func (f *Facade) Debug(msg string, params ...any) {
	f.log(core.DebugLevel, msg, params)
}

// Trace writes a TRACE message to the primary stream.
func (f *Facade) Trace(msg string, params ...any) {
	f.log(core.TraceLevel, msg, params)
}

// Info writes an INFO message to the primary stream.
func (f *Facade) Info(msg string, params ...any) {
	f.log(core.InfoLevel, msg, params)
}

// Warn writes a WARN message to the primary stream.
func (f *Facade) Warn(msg string, params ...any) {
	f.log(core.WarnLevel, msg, params)
}

// Error writes an ERROR message to the primary stream and, when enabled,
// the error channel.
func (f *Facade) Error(msg string, params ...any) {
	f.logError(msg, nil, params)
}

// ErrorCause is Error with a cause attached.
func (f *Facade) ErrorCause(msg string, cause error) {
	f.logError(msg, cause, nil)
}

// Err logs cause with its own text as the message.
func (f *Facade) Err(cause error) {
	f.logError(fmt.Sprint(cause), cause, nil)
}

// Audit writes an INFO message to the audit channel, if enabled.
func (f *Facade) Audit(msg string, params ...any) {
	f.logChannel(AuditChannel, msg, params)
}

// Metrics writes an INFO message to the metrics channel, if enabled.
func (f *Facade) Metrics(msg string, params ...any) {
	f.logChannel(MetricsChannel, msg, params)
}

// The helpers below call Stream.Log directly so that every public write
// sits exactly CallerSkip frames above the engine.

func (f *Facade) log(level core.Level, msg string, params []any) {
	f.mustPrimary().Log(level, msg, nil, params...)
}

func (f *Facade) logError(msg string, cause error, params []any) {
	f.mustPrimary().Log(core.ErrorLevel, msg, cause, params...)
	if s, ok := f.Channel(ErrorChannel); ok {
		s.Log(core.ErrorLevel, msg, cause, params...)
	}
}

func (f *Facade) logChannel(channel, msg string, params []any) {
	if s, ok := f.Channel(channel); ok {
		s.Log(core.InfoLevel, msg, nil, params...)
		return
	}
	if f.Identity().IsZero() {
		panic(ErrNoIdentity)
	}
}

var ratchetMu sync.Mutex

// raiseRootFloor moves p's root level to level when level is more verbose.
// It never makes the root less verbose.
func raiseRootFloor(p backend.Provider, level core.Level) bool {
	ratchetMu.Lock()
	defer ratchetMu.Unlock()
	if level.MoreVerboseThan(p.RootLevel()) {
		p.SetRootLevel(level)
		return true
	}
	return false
}
