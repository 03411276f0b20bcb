package handler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/formatter"
)

// ErrClosed is returned when writing to a handler whose file has been closed.
var ErrClosed = errors.New("handler: closed")

const backupTimeFormat = "2006-01-02T15-04-05.000"

// FileHandler writes log entries to a file with rotation support
type FileHandler struct {
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	mu              sync.Mutex
	maxSize         int64
	maxAge          time.Duration
	maxBackups      int
	currentSize     int64
	lastRotateTime  time.Time
	stats           *Stats
	queue           *asyncQueue
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// MaxAge is the maximum age of the active file before rotation (0 = no time rotation)
	MaxAge time.Duration
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewFileHandler creates a new file handler, creating parent directories as needed
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("handler: filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, fmt.Errorf("handler: create log directory: %w", err)
	}

	file, size, err := openLogFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	h := &FileHandler{
		filename:       cfg.Filename,
		file:           file,
		formatter:      cfg.Formatter,
		maxSize:        cfg.MaxSize,
		maxAge:         cfg.MaxAge,
		maxBackups:     cfg.MaxBackups,
		currentSize:    size,
		lastRotateTime: time.Now(),
		stats:          NewStats(),
	}
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if cfg.Async {
		h.queue = newAsyncQueue(cfg.BufferSize, cfg.OverflowPolicy, cfg.BlockTimeout, cfg.DrainTimeout, h.stats, h.write)
	}

	return h, nil
}

func openLogFile(name string) (*os.File, int64, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, 0, fmt.Errorf("handler: open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("handler: stat log file: %w", err)
	}
	return file, info.Size(), nil
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if h.queue == nil {
		return h.stats.observe(h.write(entry))
	}
	return h.queue.enqueue(entry)
}

// countingWriter tracks how many bytes went to the active file
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// write formats and writes an entry, rotating first when needed
func (h *FileHandler) write(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return ErrClosed
	}
	if err := h.rotateIfNeeded(); err != nil {
		return err
	}

	if h.writerFormatter != nil {
		cw := countingWriter{w: h.file}
		err := h.writerFormatter.FormatTo(entry, &cw)
		h.currentSize += cw.n
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	n, err := h.file.Write(data)
	h.currentSize += int64(n)
	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *FileHandler) CanRecycleEntry() bool {
	return h.queue == nil
}

// rotateIfNeeded checks size and age limits. Caller holds h.mu.
func (h *FileHandler) rotateIfNeeded() error {
	switch {
	case h.maxSize > 0 && h.currentSize >= h.maxSize:
	case h.maxAge > 0 && time.Since(h.lastRotateTime) >= h.maxAge:
	default:
		return nil
	}
	return h.rotate()
}

// rotate renames the active file to a timestamped backup and reopens
// the original name. Caller holds h.mu.
func (h *FileHandler) rotate() error {
	syncErr := h.file.Sync()
	if err := errors.Join(syncErr, h.file.Close()); err != nil {
		return h.reopen(fmt.Errorf("handler: rotation failed: %w", err))
	}

	rotatedName := h.filename + "." + time.Now().Format(backupTimeFormat)
	if err := os.Rename(h.filename, rotatedName); err != nil {
		return h.reopen(fmt.Errorf("handler: rotation failed: %w", err))
	}

	if h.maxBackups > 0 {
		h.pruneBackups()
	}

	file, _, err := openLogFile(h.filename)
	if err != nil {
		h.file = nil
		return err
	}

	h.file = file
	h.currentSize = 0
	h.lastRotateTime = time.Now()
	return nil
}

// reopen keeps logging into the original file after a failed rotation
// and returns cause. Caller holds h.mu.
func (h *FileHandler) reopen(cause error) error {
	file, size, err := openLogFile(h.filename)
	if err != nil {
		h.file = nil
		return fmt.Errorf("%w, reopen failed: %v", cause, err)
	}
	h.file, h.currentSize = file, size
	return cause
}

// pruneBackups removes the oldest backups beyond maxBackups
func (h *FileHandler) pruneBackups() {
	matches, err := filepath.Glob(h.filename + ".*")
	if err != nil {
		return
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	prefix := filepath.Base(h.filename) + "."
	backups := make([]backup, 0, len(matches))
	for _, m := range matches {
		if !strings.HasPrefix(filepath.Base(m), prefix) {
			continue
		}
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		backups = append(backups, backup{path: m, modTime: info.ModTime()})
	}
	if len(backups) <= h.maxBackups {
		return
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})
	for _, b := range backups[:len(backups)-h.maxBackups] {
		_ = os.Remove(b.path)
	}
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the queue, then syncs and closes the file. Closing twice is a no-op.
func (h *FileHandler) Close() error {
	if h.queue != nil {
		h.queue.shutdown()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	file := h.file
	h.file = nil

	syncErr := file.Sync()
	if err := file.Close(); err != nil {
		return err
	}
	return syncErr
}
