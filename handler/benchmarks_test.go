package handler

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/formatter"
)

// slowWriter simulates slow disk I/O
type slowWriter struct {
	delay time.Duration
	mu    sync.Mutex
}

func (w *slowWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	time.Sleep(w.delay)
	return len(p), nil
}

func BenchmarkConsoleSync(b *testing.B) {
	h := NewConsoleHandler(ConsoleConfig{Writer: io.Discard})
	defer h.Close()

	entry := newEntry(core.InfoLevel, "org.example", "sync log")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Handle(entry)
	}
}

// BenchmarkAsyncContention measures enqueue cost under concurrent load
func BenchmarkAsyncContention(b *testing.B) {
	h := NewConsoleHandler(ConsoleConfig{
		Writer:     io.Discard,
		Async:      true,
		BufferSize: 10000,
	})
	defer h.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			h.Handle(newEntry(core.InfoLevel, "org.example", "concurrent log"))
		}
	})
}

// BenchmarkQueueFullStress keeps the queue full with a slow writer, so
// nearly every call takes the drop path
func BenchmarkQueueFullStress(b *testing.B) {
	h := NewConsoleHandler(ConsoleConfig{
		Writer:     &slowWriter{delay: 10 * time.Millisecond},
		Async:      true,
		BufferSize: 10,
		OverflowPolicy: map[core.Level]OverflowPolicy{
			core.InfoLevel: DropNewest,
		},
		DrainTimeout: 10 * time.Millisecond,
	})
	defer h.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Handle(newEntry(core.InfoLevel, "", "stress"))
	}
	b.ReportMetric(float64(h.Stats().DroppedTotal[core.InfoLevel])/float64(b.N), "dropped/op")
}

func BenchmarkRouteHandler(b *testing.B) {
	errorsOut := NewConsoleHandler(ConsoleConfig{Writer: io.Discard, Formatter: formatter.NewJSONFormatter(formatter.Config{})})
	rest := NewConsoleHandler(ConsoleConfig{Writer: io.Discard})
	r := NewRouteHandler(rest).Route("errors", errorsOut)
	defer r.Close()

	entries := []*core.Entry{
		newEntry(core.ErrorLevel, "errors.org.example.Calendar", "failed"),
		newEntry(core.ErrorLevel, "org.example.Calendar", "failed"),
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Handle(entries[i&1])
	}
}
