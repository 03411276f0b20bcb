// Package backendtest provides an in-memory backend.Provider that records
// every resolution and write, for tests of code built on the facade.
package backendtest

import (
	"fmt"
	"sync"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/core"
)

// Record is one message written to a stream.
type Record struct {
	Stream  string
	Level   core.Level
	Message string
	Params  []any
	Cause   error
}

// Text returns the message with params substituted.
func (r Record) Text() string {
	if len(r.Params) == 0 {
		return r.Message
	}
	return fmt.Sprintf(r.Message, r.Params...)
}

// Provider records resolutions and writes. Every Stream call returns a new
// handle, so callers that memoize can be told apart from callers that
// don't; handles of the same name share level and records.
type Provider struct {
	mu          sync.Mutex
	floor       *backend.Floor
	gates       map[string]*backend.Gate
	resolutions map[string]int
	records     []Record
	failures    map[string]error
}

var _ backend.Provider = (*Provider)(nil)

// New creates a recording provider with the given root level.
func New(rootLevel core.Level) *Provider {
	return &Provider{
		floor:       backend.NewFloor(rootLevel),
		gates:       make(map[string]*backend.Gate),
		resolutions: make(map[string]int),
		failures:    make(map[string]error),
	}
}

// FailOn makes resolving name return err.
func (p *Provider) FailOn(name string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[name] = err
}

// Stream implements backend.Provider
func (p *Provider) Stream(name string) (backend.Stream, error) {
	if err := backend.ValidateName(name); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.resolutions[name]++
	if err := p.failures[name]; err != nil {
		return nil, err
	}
	g, ok := p.gates[name]
	if !ok {
		g = backend.NewGate(p.floor)
		p.gates[name] = g
	}
	return &Stream{p: p, name: name, gate: g}, nil
}

// RootLevel returns the root floor
func (p *Provider) RootLevel() core.Level {
	return p.floor.Get()
}

// SetRootLevel moves the root floor
func (p *Provider) SetRootLevel(level core.Level) {
	p.floor.Set(level)
}

// Resolutions returns how many times name was resolved.
func (p *Provider) Resolutions(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolutions[name]
}

// Records returns a copy of every record, in write order.
func (p *Provider) Records() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Record(nil), p.records...)
}

// RecordsOf returns the records written to the stream called name.
func (p *Provider) RecordsOf(name string) []Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Record
	for _, r := range p.records {
		if r.Stream == name {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets every record and resolution count. Levels are kept.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = nil
	p.resolutions = make(map[string]int)
}

func (p *Provider) record(r Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, r)
}

// Stream is a handle on a recorded stream.
type Stream struct {
	p    *Provider
	name string
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

// Log records the message when its level is enabled.
func (s *Stream) Log(level core.Level, msg string, cause error, params ...any) {
	if !s.gate.Enabled(level) {
		return
	}
	s.p.record(Record{
		Stream:  s.name,
		Level:   level,
		Message: msg,
		Params:  params,
		Cause:   cause,
	})
}
