package handler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/formatter"
)

func newTextConsole(buf *bytes.Buffer) *ConsoleHandler {
	return NewConsoleHandler(ConsoleConfig{
		Writer:    buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
}

func TestSlogHandler_Enabled(t *testing.T) {
	sh := NewSlogHandler(newTextConsole(&bytes.Buffer{}), core.InfoLevel)

	if sh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should not be enabled when level is Info")
	}
	for _, l := range []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if !sh.Enabled(context.Background(), l) {
			t.Errorf("%v should be enabled when level is Info", l)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(newTextConsole(&buf), core.DebugLevel))

	logger.Info("test message", "key", "value", "count", 42, "note", "has spaces")

	output := buf.String()
	for _, want := range []string{"test message", "key=value", "count=42", `note="has spaces"`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(newTextConsole(&buf), core.DebugLevel)).
		With("request_id", "req-123")

	logger.Info("test message")

	if !strings.Contains(buf.String(), "test message request_id=req-123") {
		t.Errorf("Expected 'request_id=req-123' in output, got: %s", buf.String())
	}
}

func TestSlogHandler_LoggerAttrBecomesLoggerName(t *testing.T) {
	capture := &captureHandler{}
	logger := slog.New(NewSlogHandler(capture, core.TraceLevel)).
		With(LoggerKey, "audit.org.example.Calendar")

	logger.Warn("booked")

	if len(capture.entries) != 1 {
		t.Fatalf("got %d entries", len(capture.entries))
	}
	e := capture.entries[0]
	if e.Logger != "audit.org.example.Calendar" || e.Message != "booked" || e.Level != core.WarnLevel {
		t.Errorf("entry = %+v", e)
	}
	if !e.Caller.Defined {
		t.Error("caller should be taken from the record PC")
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(newTextConsole(&buf), core.DebugLevel)).WithGroup("auth")

	logger.Info("test message", "user_id", 123, slog.Group("session", "ttl", time.Second, "fresh", true))

	output := buf.String()
	for _, want := range []string{"auth.user_id=123", "auth.session.ttl=1s", "auth.session.fresh=true"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestSlogHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(newTextConsole(&buf), core.InfoLevel))

	logger.Debug("should not appear")
	if buf.Len() > 0 {
		t.Error("Debug message should not have been logged")
	}

	logger.Info("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("Expected 'should appear' in output, got: %s", buf.String())
	}
}

func TestSlogLevelToCore(t *testing.T) {
	tests := []struct {
		slogLevel slog.Level
		coreLevel core.Level
	}{
		{slog.LevelDebug - 4, core.TraceLevel},
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelInfo, core.InfoLevel},
		{slog.LevelWarn, core.WarnLevel},
		{slog.LevelError, core.ErrorLevel},
		{slog.LevelError + 4, core.FatalLevel},
	}

	for _, tt := range tests {
		if got := SlogLevelToCore(tt.slogLevel); got != tt.coreLevel {
			t.Errorf("SlogLevelToCore(%v) = %v, want %v", tt.slogLevel, got, tt.coreLevel)
		}
	}
}
