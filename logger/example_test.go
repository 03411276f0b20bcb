package logger_test

import (
	"os"

	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/formatter"
	"github.com/philipp01105/chanlog/handler"
	"github.com/philipp01105/chanlog/logger"
)

// Build a repository and write through one of its named loggers.
func ExampleNewBuilder() {
	ch := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    os.Stdout,
		Formatter: formatter.NewJSONFormatter(formatter.Config{OmitLogger: true}),
	})

	repo := logger.NewBuilder().
		WithHandler(ch).
		WithRootLevel(core.DebugLevel).
		Build()
	defer repo.Close()

	cal, _ := repo.Logger("org.example.Calendar")
	cal.Debug("ready")
	cal.Trace("filtered")
}

// Route a side channel to its own output.
func ExampleRepository_Logger() {
	errorsOut := handler.NewConsoleHandler(handler.ConsoleConfig{Writer: os.Stderr})
	rest := handler.NewConsoleHandler(handler.ConsoleConfig{Writer: os.Stdout})

	repo := logger.NewBuilder().
		WithHandler(handler.NewRouteHandler(rest).Route("errors", errorsOut)).
		Build()
	defer repo.Close()

	primary, _ := repo.Logger("org.example.Calendar")
	errs, _ := repo.Logger("errors.org.example.Calendar")

	primary.Info("to stdout")
	errs.Error("to stderr", nil)
}
