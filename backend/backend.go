// Package backend defines the contract between the facade and a logging
// engine, plus the name validation and level gating every engine shares.
//
// A Provider resolves named streams; a Stream is one named logger of the
// engine. Engines live in subpackages (zapbackend, logrusbackend,
// zerologbackend, slogbackend, backendtest) and in package logger for the
// native engine.
package backend

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/philipp01105/chanlog/core"
)

// ErrMalformedName is returned when a stream name cannot be resolved.
var ErrMalformedName = errors.New("backend: malformed stream name")

// Stream is one named log stream of an engine.
type Stream interface {
	// Name returns the name the stream was resolved with.
	Name() string
	// Enabled reports whether a message at level would be written.
	Enabled(level core.Level) bool
	// Level returns the stream's effective threshold.
	Level() core.Level
	// SetLevel sets the stream's own threshold.
	SetLevel(level core.Level)
	// Log writes msg at level. params are substituted into msg with fmt
	// verbs; cause, when non-nil, is attached to the record.
	Log(level core.Level, msg string, cause error, params ...any)
}

// Provider resolves streams by name. Resolving the same name twice yields
// the same logical stream.
type Provider interface {
	Stream(name string) (Stream, error)
	// RootLevel returns the floor below which no stream writes.
	RootLevel() core.Level
	SetRootLevel(level core.Level)
}

// ValidateName checks that name is usable as a stream name: non-empty, no
// whitespace or control characters, and no empty dot-separated segment.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrMalformedName)
	}
	if i := strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}); i >= 0 {
		return fmt.Errorf("%w: %q has a blank or control character at %d", ErrMalformedName, name, i)
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q has an empty segment", ErrMalformedName, name)
	}
	return nil
}
