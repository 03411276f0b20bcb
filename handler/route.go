package handler

import (
	"errors"
	"strings"

	"github.com/philipp01105/chanlog/core"
)

type route struct {
	prefix  string
	handler Handler
}

// RouteHandler sends each entry to the handler registered for its logger
// name prefix, or to the fallback. It lets side channels such as
// "errors.org.example.Calendar" go to their own output.
type RouteHandler struct {
	routes   []route
	fallback Handler
}

// NewRouteHandler creates a router that sends unmatched entries to fallback.
// A nil fallback discards them.
func NewRouteHandler(fallback Handler) *RouteHandler {
	return &RouteHandler{fallback: fallback}
}

// Route registers h for loggers named prefix or prefix + ".<anything>".
// Routes are matched in registration order. Route is not safe to call
// once the handler is in use.
func (r *RouteHandler) Route(prefix string, h Handler) *RouteHandler {
	r.routes = append(r.routes, route{prefix: prefix, handler: h})
	return r
}

// target returns the handler for a logger name, or nil
func (r *RouteHandler) target(logger string) Handler {
	for _, rt := range r.routes {
		if logger == rt.prefix ||
			(strings.HasPrefix(logger, rt.prefix) && logger[len(rt.prefix)] == '.') {
			return rt.handler
		}
	}
	return r.fallback
}

// Handle processes a log entry
func (r *RouteHandler) Handle(entry *core.Entry) error {
	h := r.target(entry.Logger)
	if h == nil {
		return nil
	}
	return dispatch(h, entry)
}

// CanRecycleEntry always returns true: handlers that queue entries
// receive copies.
func (r *RouteHandler) CanRecycleEntry() bool {
	return true
}

// Close closes every route and the fallback. A handler registered more
// than once is closed more than once; the built-in handlers tolerate that.
func (r *RouteHandler) Close() error {
	var errs []error
	for _, rt := range r.routes {
		if err := rt.handler.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.fallback != nil {
		if err := r.fallback.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
