package facade

import (
	"fmt"
	"strings"

	"github.com/philipp01105/chanlog/core"
)

// Level is the facade's abstract severity vocabulary. Values grow with
// verbosity: LevelOff lets nothing through, LevelAll everything.
type Level int8

const (
	LevelOff Level = iota
	LevelSevere
	LevelWarning
	LevelInfo
	LevelConfig
	LevelFine
	LevelFiner
	LevelFinest
	LevelAll
)

var levelNames = [...]string{
	LevelOff:     "OFF",
	LevelSevere:  "SEVERE",
	LevelWarning: "WARNING",
	LevelInfo:    "INFO",
	LevelConfig:  "CONFIG",
	LevelFine:    "FINE",
	LevelFiner:   "FINER",
	LevelFinest:  "FINEST",
	LevelAll:     "ALL",
}

// String returns the level name
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int8(l))
}

// MoreVerboseThan reports whether l lets through more messages than other.
func (l Level) MoreVerboseThan(other Level) bool {
	return l > other
}

// Levels returns every abstract level, least verbose first.
func Levels() []Level {
	out := make([]Level, 0, len(levelNames))
	for l := LevelOff; l <= LevelAll; l++ {
		out = append(out, l)
	}
	return out
}

// levelTable pairs every abstract level with its backend level. Several
// abstract levels share DEBUG; going back, the first pair wins, so the
// round trip coarsens FINE and FINER to CONFIG.
var levelTable = [...]struct {
	abstract Level
	backend  core.Level
}{
	{LevelOff, core.OffLevel},
	{LevelSevere, core.ErrorLevel},
	{LevelWarning, core.WarnLevel},
	{LevelInfo, core.InfoLevel},
	{LevelConfig, core.DebugLevel},
	{LevelFine, core.DebugLevel},
	{LevelFiner, core.DebugLevel},
	{LevelFinest, core.TraceLevel},
	{LevelAll, core.AllLevel},
}

// ToBackend translates an abstract level. ok is false for levels without
// a table entry, which callers treat as "leave the level alone".
func ToBackend(l Level) (level core.Level, ok bool) {
	for _, p := range levelTable {
		if p.abstract == l {
			return p.backend, true
		}
	}
	return 0, false
}

// ToAbstract translates a backend level. Levels without a table entry,
// such as FATAL, yield LevelInfo.
func ToAbstract(l core.Level) Level {
	for _, p := range levelTable {
		if p.backend == l {
			return p.abstract
		}
	}
	return LevelInfo
}

// ParseLevel parses an abstract level name, case-insensitively. The
// backend names ERROR, WARN, DEBUG and TRACE are accepted as aliases and
// yield the level ToAbstract would.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	switch name {
	case "ERROR":
		return ToAbstract(core.ErrorLevel), nil
	case "WARN":
		return ToAbstract(core.WarnLevel), nil
	case "DEBUG":
		return ToAbstract(core.DebugLevel), nil
	case "TRACE":
		return ToAbstract(core.TraceLevel), nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
