package config

import (
	"errors"
	"fmt"

	"github.com/philipp01105/chanlog/facade"
)

// Apply sets the root level, then each component's level and channels.
// Component levels may raise the root floor; the root level itself is set
// as given. A failing component does not stop the others; every failure
// is returned, joined. A component named after a type's qualified name
// configures the same facade as facade.Of for that type.
func (c Config) Apply(reg *facade.Registry) error {
	root, err := facade.ParseLevel(c.RootLevel)
	if err != nil {
		return err
	}
	if bl, ok := facade.ToBackend(root); ok {
		reg.Provider().SetRootLevel(bl)
	}

	var errs []error
	for _, comp := range c.Components {
		id := facade.Named(comp.Name)
		if comp.Level != "" {
			lvl, err := facade.ParseLevel(comp.Level)
			if err != nil {
				errs = append(errs, fmt.Errorf("component %s: %w", comp.Name, err))
				continue
			}
			if err := reg.SetLevel(id, lvl); err != nil {
				errs = append(errs, fmt.Errorf("component %s: %w", comp.Name, err))
				continue
			}
		}
		f := reg.For(id)
		for _, ch := range comp.Channels {
			if _, err := f.EnableChannel(ch); err != nil {
				errs = append(errs, fmt.Errorf("component %s: %w", comp.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}
