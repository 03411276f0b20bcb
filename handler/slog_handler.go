package handler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/philipp01105/chanlog/core"
)

// LoggerKey is the slog attribute that carries the logger name. When set
// through WithAttrs it becomes core.Entry.Logger instead of an attribute.
const LoggerKey = "logger"

// SlogHandler is an adapter that implements slog.Handler using a Handler.
// Attributes are rendered as key=value pairs after the message.
type SlogHandler struct {
	handler Handler
	level   core.Level
	logger  string
	attrs   string
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h Handler, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return SlogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record to a core.Entry and passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = SlogLevelToCore(record.Level)
	entry.Logger = s.logger

	if s.attrs == "" && record.NumAttrs() == 0 {
		entry.Message = record.Message
	} else {
		var b strings.Builder
		b.WriteString(record.Message)
		b.WriteString(s.attrs)
		record.Attrs(func(a slog.Attr) bool {
			appendAttr(&b, s.group, a)
			return true
		})
		entry.Message = b.String()
	}

	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		entry.Caller = core.CallerInfo{
			File:      frame.File,
			ShortFile: filepath.Base(frame.File),
			Line:      frame.Line,
			Function:  frame.Function,
			Defined:   true,
		}
	}

	recycle := canRecycle(s.handler)
	err := s.handler.Handle(entry)
	if recycle {
		core.PutEntry(entry)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *s
	var b strings.Builder
	b.WriteString(s.attrs)
	for _, a := range attrs {
		if a.Key == LoggerKey && s.group == "" {
			clone.logger = a.Value.Resolve().String()
			continue
		}
		appendAttr(&b, s.group, a)
	}
	clone.attrs = b.String()
	return &clone
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	clone := *s
	if s.group != "" {
		clone.group = s.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

// SlogLevelToCore converts a slog.Level to a core.Level. Levels below
// slog.LevelDebug are TRACE; levels from slog.LevelError+4 up are FATAL.
func SlogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.FatalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr writes " group.key=value", flattening nested groups.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		if strings.ContainsAny(v, " \t\n\"=") {
			fmt.Fprintf(b, "%q", v)
			return
		}
		b.WriteString(v)
		return
	}
	fmt.Fprint(b, a.Value.Any())
}
