package handler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/formatter"
)

// syncBuffer is a bytes.Buffer safe for use by a handler's worker goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureHandler keeps a copy of every entry it sees
type captureHandler struct {
	mu      sync.Mutex
	entries []core.Entry
	closed  int
}

func (c *captureHandler) Handle(entry *core.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, *entry)
	return nil
}

func (c *captureHandler) CanRecycleEntry() bool { return true }

func (c *captureHandler) Close() error {
	c.mu.Lock()
	c.closed++
	c.mu.Unlock()
	return nil
}

func (c *captureHandler) loggers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Logger
	}
	return names
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func newEntry(level core.Level, logger, msg string) *core.Entry {
	e := core.GetEntry()
	e.Level = level
	e.Logger = logger
	e.Message = msg
	return e
}

func TestConsoleHandler_Sync(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	defer h.Close()

	if !h.CanRecycleEntry() {
		t.Error("sync handler should let the caller recycle entries")
	}

	if err := h.Handle(newEntry(core.InfoLevel, "org.example", "test message")); err != nil {
		t.Errorf("Handle() error = %v", err)
	}

	if !strings.Contains(buf.String(), "org.example - test message") {
		t.Errorf("Expected message in output, got: %s", buf.String())
	}
}

func TestConsoleHandler_Async(t *testing.T) {
	var buf syncBuffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:     &buf,
		Async:      true,
		BufferSize: 10,
	})

	if h.CanRecycleEntry() {
		t.Error("async handler owns queued entries")
	}

	for i := 0; i < 5; i++ {
		if err := h.Handle(newEntry(core.InfoLevel, "", "async test")); err != nil {
			t.Errorf("Handle() error = %v", err)
		}
	}

	// Close drains the queue
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := strings.Count(buf.String(), "async test"); got != 5 {
		t.Errorf("Expected 5 messages after Close, got %d", got)
	}
	if stats := h.Stats(); stats.ProcessedTotal != 5 {
		t.Errorf("ProcessedTotal = %d, want 5", stats.ProcessedTotal)
	}
}

func TestConsoleHandler_HandleAfterClose(t *testing.T) {
	var buf syncBuffer
	h := NewConsoleHandler(ConsoleConfig{Writer: &buf, Async: true})
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	if err := h.Handle(newEntry(core.InfoLevel, "", "late")); err != nil {
		t.Errorf("Handle() after Close error = %v", err)
	}
	if !strings.Contains(buf.String(), "late") {
		t.Error("entries handled after Close should be written synchronously")
	}
}

func TestConsoleHandler_WriteFailureCounted(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{Writer: failingWriter{}})

	if err := h.Handle(newEntry(core.ErrorLevel, "", "x")); err == nil {
		t.Error("expected write error to be returned")
	}
	if stats := h.Stats(); stats.FailedTotal != 1 || stats.ProcessedTotal != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1 bytes.Buffer
	var buf2 syncBuffer

	h1 := NewConsoleHandler(ConsoleConfig{Writer: &buf1})
	h2 := NewConsoleHandler(ConsoleConfig{Writer: &buf2, Async: true})

	multi := NewMultiHandler(h1, h2)

	entry := newEntry(core.InfoLevel, "", "multi test")
	if err := multi.Handle(entry); err != nil {
		t.Errorf("Handle() error = %v", err)
	}
	// the async child got its own copy
	core.PutEntry(entry)

	if err := multi.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf1.String(), "multi test") {
		t.Error("First handler did not receive message")
	}
	if !strings.Contains(buf2.String(), "multi test") {
		t.Error("Second handler did not receive message")
	}
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	good := NewConsoleHandler(ConsoleConfig{Writer: &buf})
	bad := NewConsoleHandler(ConsoleConfig{Writer: failingWriter{}})

	err := NewMultiHandler(bad, good).Handle(newEntry(core.WarnLevel, "", "still written"))
	if err == nil {
		t.Error("expected error from failing child")
	}
	if !strings.Contains(buf.String(), "still written") {
		t.Error("a failing child must not stop the others")
	}
}

func TestRouteHandler(t *testing.T) {
	errorsOut := &captureHandler{}
	auditOut := &captureHandler{}
	rest := &captureHandler{}

	r := NewRouteHandler(rest).
		Route("errors", errorsOut).
		Route("audit", auditOut)

	for _, name := range []string{
		"errors.org.example.Calendar",
		"audit.org.example.Calendar",
		"org.example.Calendar",
		"errorsx.org.example",
		"errors",
	} {
		if err := r.Handle(newEntry(core.InfoLevel, name, "m")); err != nil {
			t.Fatalf("Handle(%s) error = %v", name, err)
		}
	}

	if got := errorsOut.loggers(); len(got) != 2 || got[0] != "errors.org.example.Calendar" || got[1] != "errors" {
		t.Errorf("errors route got %v", got)
	}
	if got := auditOut.loggers(); len(got) != 1 {
		t.Errorf("audit route got %v", got)
	}
	if got := rest.loggers(); len(got) != 2 || got[1] != "errorsx.org.example" {
		t.Errorf("fallback got %v", got)
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if errorsOut.closed != 1 || auditOut.closed != 1 || rest.closed != 1 {
		t.Error("Close should close every route and the fallback")
	}
}

func TestRouteHandler_NilFallbackDiscards(t *testing.T) {
	r := NewRouteHandler(nil)
	if err := r.Handle(newEntry(core.InfoLevel, "org.example", "m")); err != nil {
		t.Errorf("Handle() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFileHandler(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "app.log")

	h, err := NewFileHandler(FileConfig{
		Filename:  filename,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Handle(newEntry(core.ErrorLevel, "errors.org.example", "written to file")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"message":"written to file"`) {
		t.Errorf("file content = %s", data)
	}

	if err := h.Handle(newEntry(core.InfoLevel, "", "too late")); !errors.Is(err, ErrClosed) {
		t.Errorf("Handle() after Close = %v, want ErrClosed", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestFileHandler_RequiresFilename(t *testing.T) {
	if _, err := NewFileHandler(FileConfig{}); err == nil {
		t.Error("expected error for empty filename")
	}
}

func backups(t *testing.T, filename string) []string {
	t.Helper()
	matches, err := filepath.Glob(filename + ".*")
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestFileHandler_MaxBackups(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	h, err := NewFileHandler(FileConfig{
		Filename:   filename,
		MaxSize:    100, // Small size to trigger rotation
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	for i := 0; i < 20; i++ {
		if err := h.Handle(newEntry(core.InfoLevel, "", "This is a test message that will trigger rotation")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}

	got := backups(t, filename)
	if len(got) == 0 {
		t.Error("expected at least one rotated file")
	}
	if len(got) > 2 {
		t.Errorf("expected at most 2 backups, got %d: %v", len(got), got)
	}
}

func TestFileHandler_RecoversFromFailedRotation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	h, err := NewFileHandler(FileConfig{
		Filename: filename,
		MaxSize:  10,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := h.Handle(newEntry(core.InfoLevel, "", "first")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	// the active handle goes bad behind the handler's back
	h.mu.Lock()
	_ = h.file.Close()
	h.mu.Unlock()

	if err := h.Handle(newEntry(core.InfoLevel, "", "second")); err == nil {
		t.Error("expected the failed rotation to be reported")
	}
	if err := h.Handle(newEntry(core.InfoLevel, "", "third")); err != nil {
		t.Fatalf("Handle() after failed rotation error = %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "third") {
		t.Errorf("file content = %q, want the message written after recovery", data)
	}
	if got := h.Stats().FailedTotal; got != 1 {
		t.Errorf("failed = %d, want 1", got)
	}
}

func TestFileHandler_MaxAge(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	h, err := NewFileHandler(FileConfig{
		Filename: filename,
		MaxAge:   50 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	h.Handle(newEntry(core.InfoLevel, "", "first"))
	time.Sleep(80 * time.Millisecond)
	h.Handle(newEntry(core.InfoLevel, "", "second"))

	if len(backups(t, filename)) != 1 {
		t.Fatal("expected the aged file to be rotated")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("active file = %q", data)
	}
}

func TestFileHandler_Async(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "async.log")

	h, err := NewFileHandler(FileConfig{Filename: filename, Async: true, BufferSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		h.Handle(newEntry(core.InfoLevel, "", "queued"))
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(filename)
	if got := strings.Count(string(data), "queued"); got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}
