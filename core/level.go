package core

import "strings"

// Level is the severity vocabulary shared by every backend engine.
// Lower values are more verbose. AllLevel and OffLevel are thresholds only;
// no message is ever written at either of them.
type Level int8

const (
	// AllLevel enables every message when used as a threshold
	AllLevel Level = iota
	// TraceLevel for very fine grained diagnostics
	TraceLevel
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for errors the application cannot recover from
	FatalLevel
	// OffLevel disables every message when used as a threshold
	OffLevel
)

var levelNames = [...]string{
	AllLevel:   "ALL",
	TraceLevel: "TRACE",
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
	OffLevel:   "OFF",
}

// String returns the string representation of the level
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the defined levels
func (l Level) Valid() bool {
	return l >= AllLevel && l <= OffLevel
}

// IsMessageLevel reports whether a message may be written at l.
func (l Level) IsMessageLevel() bool {
	return l > AllLevel && l < OffLevel
}

// MoreVerboseThan reports whether l lets through more messages than other.
func (l Level) MoreVerboseThan(other Level) bool {
	return l < other
}

// ParseLevel converts a string to a Level. Unknown names yield InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL":
		return AllLevel
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	case "OFF":
		return OffLevel
	default:
		return InfoLevel
	}
}
