package facade

import (
	"sync"

	"github.com/philipp01105/chanlog/backend"
)

// Registry hands out one shared Facade per identity over a single backend.
// Programs usually create one at startup and pass it to their components.
type Registry struct {
	provider backend.Provider

	mu      sync.RWMutex
	facades map[string]*Facade
}

// NewRegistry creates a registry over p.
func NewRegistry(p backend.Provider) *Registry {
	return &Registry{
		provider: p,
		facades:  make(map[string]*Facade),
	}
}

// For returns the facade for id, creating it on first request. Identities
// with the same qualified name share one facade, so Named("pkg.Calendar")
// and the type pkg.Calendar see the same channels. The zero Identity is not
// shared: every call returns a fresh facade that must be given an identity
// before use.
func (r *Registry) For(id Identity) *Facade {
	if id.IsZero() {
		return New(r.provider, id)
	}
	key := id.QualifiedName()

	r.mu.RLock()
	f, ok := r.facades[key]
	r.mu.RUnlock()
	if ok {
		return f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok = r.facades[key]; ok {
		return f
	}
	f = New(r.provider, id)
	r.facades[key] = f
	return f
}

// Of returns the facade for type T.
func Of[T any](r *Registry) *Facade {
	return r.For(ForType[T]())
}

// Named returns the facade for a plain name.
func (r *Registry) Named(name string) *Facade {
	return r.For(Named(name))
}

// Bind returns an instance-scoped accessor for owner. See Logged.
func (r *Registry) Bind(owner any) *Logged {
	return NewLogged(r.provider, owner)
}

// Provider returns the registry's backend
func (r *Registry) Provider() backend.Provider {
	return r.provider
}

// RootLevel returns the backend's root floor as an abstract level.
func (r *Registry) RootLevel() Level {
	return ToAbstract(r.provider.RootLevel())
}

// Level returns the effective level of id's primary stream.
func (r *Registry) Level(id Identity) (Level, error) {
	return r.For(id).Level()
}

// SetLevel sets the level of id's primary stream. When level is more
// verbose than the root floor, the floor is raised to it; the floor is
// never lowered, so a later, quieter SetLevel leaves it where it was.
func (r *Registry) SetLevel(id Identity, level Level) error {
	return r.For(id).SetLevel(level)
}

// RaiseRootFloor makes the root floor as verbose as level if it is not
// already, and reports whether it moved.
func (r *Registry) RaiseRootFloor(level Level) bool {
	bl, ok := ToBackend(level)
	if !ok {
		return false
	}
	return raiseRootFloor(r.provider, bl)
}
