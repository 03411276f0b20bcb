// Package core defines the types shared by every chanlog backend engine.
//
// Level is the backend severity vocabulary: ALL < TRACE < DEBUG < INFO <
// WARN < ERROR < FATAL < OFF. ALL and OFF only make sense as thresholds;
// messages are written at the levels in between. The facade package keeps
// its own, finer vocabulary and translates into this one.
//
// Entry represents a single log event produced by the native engine. It
// carries the resolved logger name, the raw message and its positional
// parameters, and an optional cause. Parameters are substituted lazily by
// Entry.Text, so an entry that is filtered out never pays for fmt.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once the handler has consumed it.
package core
