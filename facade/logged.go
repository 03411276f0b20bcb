package facade

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
)

// Logged gives a type logging methods by composition:
//
//	type Calendar struct {
//		*facade.Logged
//	}
//
//	c := &Calendar{}
//	c.Logged = registry.Bind(c)
//	c.Info("opened %s", name)
//
// The facade is created on first use, named after the owner's runtime
// type, and kept for the owner's lifetime. Each Logged owns its facade, so
// channels enabled on one owner are not enabled on another.
type Logged struct {
	provider backend.Provider
	owner    any

	once   sync.Once
	facade *Facade
}

// NewLogged creates an accessor for owner over p.
func NewLogged(p backend.Provider, owner any) *Logged {
	return &Logged{provider: p, owner: owner}
}

// Logger returns the owned facade.
func (l *Logged) Logger() *Facade {
	l.once.Do(func() {
		l.facade = New(l.provider, TypeOf(l.owner))
	})
	return l.facade
}

// SetLoggerType names the facade after t instead of the owner's type. It
// has no effect on streams already resolved.
func (l *Logged) SetLoggerType(t reflect.Type) {
	l.Logger().SetType(t)
}

// DebugEnabled reports whether DEBUG messages are written
func (l *Logged) DebugEnabled() bool { return l.Logger().IsDebugEnabled() }

// TraceEnabled reports whether TRACE messages are written
func (l *Logged) TraceEnabled() bool { return l.Logger().IsTraceEnabled() }

// IsMetricsDebugEnabled see Facade.IsMetricsDebugEnabled
func (l *Logged) IsMetricsDebugEnabled() bool { return l.Logger().IsMetricsDebugEnabled() }

// EnableErrorLogger see Facade.EnableErrorLogger
func (l *Logged) EnableErrorLogger() backend.Stream { return l.Logger().EnableErrorLogger() }

// EnableAuditLogger see Facade.EnableAuditLogger
func (l *Logged) EnableAuditLogger() backend.Stream { return l.Logger().EnableAuditLogger() }

// EnableMetricsLogger see Facade.EnableMetricsLogger
func (l *Logged) EnableMetricsLogger() backend.Stream { return l.Logger().EnableMetricsLogger() }

// IsErrorLoggerEnabled reports whether errors are copied to the error channel
func (l *Logged) IsErrorLoggerEnabled() bool { return l.Logger().IsErrorLoggerEnabled() }

// IsAuditLoggerEnabled reports whether the audit channel is enabled
func (l *Logged) IsAuditLoggerEnabled() bool { return l.Logger().IsAuditLoggerEnabled() }

// IsMetricsLoggerEnabled reports whether the metrics channel is enabled
func (l *Logged) IsMetricsLoggerEnabled() bool { return l.Logger().IsMetricsLoggerEnabled() }

// The write methods call the facade's helpers directly, keeping call sites
// CallerSkip frames above the engine as with a plain Facade.

// Debug writes a DEBUG message to the primary stream
func (l *Logged) Debug(msg string, params ...any) {
	l.Logger().log(core.DebugLevel, msg, params)
}

// Trace writes a TRACE message to the primary stream
func (l *Logged) Trace(msg string, params ...any) {
	l.Logger().log(core.TraceLevel, msg, params)
}

// Info writes an INFO message to the primary stream
func (l *Logged) Info(msg string, params ...any) {
	l.Logger().log(core.InfoLevel, msg, params)
}

// Warn writes a WARN message to the primary stream
func (l *Logged) Warn(msg string, params ...any) {
	l.Logger().log(core.WarnLevel, msg, params)
}

// Error writes an ERROR message, copied to the error channel when enabled
func (l *Logged) Error(msg string, params ...any) {
	l.Logger().logError(msg, nil, params)
}

// ErrorCause writes an ERROR message with its cause
func (l *Logged) ErrorCause(msg string, cause error) {
	l.Logger().logError(msg, cause, nil)
}

// Err writes cause as an ERROR message
func (l *Logged) Err(cause error) {
	l.Logger().logError(fmt.Sprint(cause), cause, nil)
}

// Audit writes to the audit channel, a no-op while it is disabled
func (l *Logged) Audit(msg string, params ...any) {
	l.Logger().logChannel(AuditChannel, msg, params)
}

// Metrics writes to the metrics channel, a no-op while it is disabled
func (l *Logged) Metrics(msg string, params ...any) {
	l.Logger().logChannel(MetricsChannel, msg, params)
}
