// Package facade is the logging API components write against. A Facade
// names itself after a Go type or a plain name, resolves its stream from
// a backend.Provider on first use, and can additionally write to three
// side channels: errors, audit and metrics.
//
// Basic use:
//
//	reg := facade.NewRegistry(provider)
//	log := facade.Of[Calendar](reg)
//	log.Info("opened %s", name)
//	if log.IsDebugEnabled() {
//		log.Debug("state: %v", state)
//	}
//
// Side channels are off until enabled:
//
//	log.EnableErrorLogger()
//	log.ErrorCause("sync failed", err) // primary stream and errors channel
//	log.Audit("user %s logged in", user) // no-op, audit not enabled
//
// Levels are expressed in the abstract vocabulary (SEVERE .. FINEST) and
// translated through a fixed table to the backend's levels. CONFIG, FINE
// and FINER all become DEBUG, and DEBUG reads back as CONFIG.
package facade
