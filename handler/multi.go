package handler

import (
	"errors"

	"github.com/philipp01105/chanlog/core"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle sends the entry to every child. All children are tried; the
// returned error joins every failure.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var errs []error
	for _, child := range h.handlers {
		if err := dispatch(child, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CanRecycleEntry always returns true: children that queue entries
// receive copies.
func (h *MultiHandler) CanRecycleEntry() bool {
	return true
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var errs []error
	for _, child := range h.handlers {
		if err := child.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
