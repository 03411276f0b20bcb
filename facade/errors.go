package facade

import (
	"errors"
	"fmt"
)

var (
	// ErrNoIdentity means a facade was used before a type or name was set.
	// It is a programming error; write and query methods panic with it.
	ErrNoIdentity = errors.New("facade: no identity")
	// ErrUnknownChannel is returned for channel names other than errors,
	// audit and metrics.
	ErrUnknownChannel = errors.New("facade: unknown channel")
	// ErrUnknownLevel is returned by ParseLevel.
	ErrUnknownLevel = errors.New("facade: unknown level")
)

// ResolveError wraps a backend failure to resolve a stream.
type ResolveError struct {
	Name string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("facade: resolve stream %q: %v", e.Name, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
