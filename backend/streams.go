package backend

import "sync"

// Streams memoizes engine streams by name so that a provider hands out one
// logical stream per name. The zero value is ready to use.
type Streams[S Stream] struct {
	mu      sync.RWMutex
	streams map[string]S
}

// Get returns the stream for name, calling create on first use. create
// runs at most once per name, only after the name has been validated.
func (s *Streams[S]) Get(name string, create func(name string) (S, error)) (S, error) {
	s.mu.RLock()
	st, ok := s.streams[name]
	s.mu.RUnlock()
	if ok {
		return st, nil
	}

	var zero S
	if err := ValidateName(name); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.streams[name]; ok {
		return st, nil
	}
	st, err := create(name)
	if err != nil {
		return zero, err
	}
	if s.streams == nil {
		s.streams = make(map[string]S)
	}
	s.streams[name] = st
	return st, nil
}

// Each calls fn for every stream resolved so far, in no particular order.
func (s *Streams[S]) Each(fn func(S)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.streams {
		fn(st)
	}
}

// Len returns the number of resolved streams.
func (s *Streams[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams)
}
