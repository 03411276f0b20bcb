package backend

import (
	"sync/atomic"

	"github.com/philipp01105/chanlog/core"
)

// Floor is a provider-wide minimum level shared by all of its streams.
// The zero value is a floor at AllLevel.
type Floor struct {
	level atomic.Int32
}

// NewFloor creates a floor at level.
func NewFloor(level core.Level) *Floor {
	f := &Floor{}
	f.Set(level)
	return f
}

// Get returns the floor level.
func (f *Floor) Get() core.Level {
	return core.Level(f.level.Load())
}

// Set moves the floor to level in either direction.
func (f *Floor) Set(level core.Level) {
	f.level.Store(int32(level))
}

// unset marks a Gate without its own level.
const unset = -1

// Gate is the per-stream threshold. A stream without its own level
// follows the floor.
type Gate struct {
	floor *Floor
	own   atomic.Int32
}

// NewGate creates a gate without its own level that follows floor.
func NewGate(floor *Floor) *Gate {
	g := &Gate{floor: floor}
	g.own.Store(unset)
	return g
}

// Enabled reports whether a message at level passes both the floor and
// the gate's own level. Threshold-only levels (ALL, OFF) never pass.
func (g *Gate) Enabled(level core.Level) bool {
	if !level.IsMessageLevel() || level < g.floor.Get() {
		return false
	}
	own := g.own.Load()
	return own == unset || int32(level) >= own
}

// Level returns the gate's own level, or the floor when it has none.
func (g *Gate) Level() core.Level {
	if own := g.own.Load(); own != unset {
		return core.Level(own)
	}
	return g.floor.Get()
}

// HasLevel reports whether the gate has its own level.
func (g *Gate) HasLevel() bool {
	return g.own.Load() != unset
}

// SetLevel sets the gate's own level.
func (g *Gate) SetLevel(level core.Level) {
	g.own.Store(int32(level))
}

// ClearLevel drops the gate's own level so it follows the floor again.
func (g *Gate) ClearLevel() {
	g.own.Store(unset)
}
