package handler

import (
	"github.com/philipp01105/chanlog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Recycler is implemented by handlers that report whether the caller may
// return an entry to the pool once Handle has returned. Handlers that
// queue entries take ownership and recycle them themselves.
type Recycler interface {
	CanRecycleEntry() bool
}

// canRecycle reports whether h is known to be done with an entry after Handle.
func canRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}

// dispatch hands entry to h. Handlers that keep entries beyond Handle get
// their own pooled copy so the caller keeps ownership of entry.
func dispatch(h Handler, entry *core.Entry) error {
	if canRecycle(h) {
		return h.Handle(entry)
	}
	c := core.GetEntry()
	*c = *entry
	return h.Handle(c)
}
