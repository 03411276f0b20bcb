// Package logger is the native engine: a Repository of named loggers that
// write core entries through a handler.Handler.
//
// A Repository is built once and never reconfigured except for levels:
//
//	repo := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithRootLevel(core.InfoLevel).
//	    WithCaller(true).
//	    Build()
//
//	cal, _ := repo.Logger("org.example.Calendar")
//	cal.Info("booked %d rooms", 3)
//
// Each name yields exactly one *Logger. A logger writes a message when
// the level passes both the repository's root floor and the logger's own
// level, if it has one. Level checks happen before any allocation.
//
// Repository implements backend.Provider and Logger implements
// backend.Stream, so the facade can use this engine directly.
package logger
