// Package handler provides the Handler interface and its built-in
// implementations for dispatching log entries to outputs.
//
// Console and file handlers run synchronously or asynchronously. In async
// mode entries go to a bounded channel drained by one goroutine, and the
// handler takes ownership of every entry it is given.
//
// When the async queue is full, each handler applies a per-level
// OverflowPolicy: DropNewest (default for Trace through Warn), DropOldest,
// or Block with a timeout after which the entry is written on the caller's
// goroutine (default for Error and Fatal). Errors are never dropped by the
// default policy.
//
// Built-in handlers:
//
//   - ConsoleHandler writes formatted entries to any io.Writer (default: stdout).
//   - FileHandler writes to a file with rotation by size or age and prunes
//     old backups.
//   - MultiHandler fans out a single entry to multiple child handlers.
//   - RouteHandler picks a child by logger name prefix, which is how side
//     channels ("errors.", "audit.", "metrics.") get their own outputs.
//   - SlogHandler adapts a Handler to log/slog.Handler.
//
// All handlers count processed, failed, blocked and dropped entries in a
// Stats value.
package handler
