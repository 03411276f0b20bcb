package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/chanlog/core"
)

const (
	defaultBufferSize   = 1000
	defaultBlockTimeout = 100 * time.Millisecond
	defaultDrainTimeout = 5 * time.Second
)

// asyncQueue is the bounded queue and worker goroutine shared by the
// console and file handlers. Entries handed to enqueue are owned by the
// queue and returned to the pool once written or dropped.
type asyncQueue struct {
	queue          chan *core.Entry
	closed         chan struct{}
	wg             sync.WaitGroup
	mu             sync.RWMutex // write-held only while stopping
	stopped        bool
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	stats          *Stats
	write          func(*core.Entry) error
}

func newAsyncQueue(
	bufferSize int,
	policy map[core.Level]OverflowPolicy,
	blockTimeout, drainTimeout time.Duration,
	stats *Stats,
	write func(*core.Entry) error,
) *asyncQueue {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if policy == nil {
		policy = DefaultLevelPolicy()
	}
	if blockTimeout <= 0 {
		blockTimeout = defaultBlockTimeout
	}
	if drainTimeout <= 0 {
		drainTimeout = defaultDrainTimeout
	}

	q := &asyncQueue{
		queue:          make(chan *core.Entry, bufferSize),
		closed:         make(chan struct{}),
		overflowPolicy: policy,
		blockTimeout:   blockTimeout,
		drainTimeout:   drainTimeout,
		stats:          stats,
		write:          write,
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// enqueue hands the entry to the worker according to the overflow policy
// for its level. After shutdown entries are written synchronously.
func (q *asyncQueue) enqueue(entry *core.Entry) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.stopped {
		return q.writeAndRecycle(entry)
	}

	select {
	case q.queue <- entry:
		return nil
	default:
	}

	policy, ok := q.overflowPolicy[entry.Level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- entry:
			return nil
		case <-timer.C:
			// still full, write on the caller's goroutine
			q.stats.IncrementBlocked()
			return q.writeAndRecycle(entry)
		}

	case DropOldest:
		select {
		case old := <-q.queue:
			q.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case q.queue <- entry:
			return nil
		default:
		}
	}

	q.stats.IncrementDropped(entry.Level)
	core.PutEntry(entry)
	return nil
}

func (q *asyncQueue) writeAndRecycle(entry *core.Entry) error {
	err := q.stats.observe(q.write(entry))
	core.PutEntry(entry)
	return err
}

func (q *asyncQueue) run() {
	defer q.wg.Done()

	for {
		select {
		case entry := <-q.queue:
			// failures are counted in stats; the worker keeps going
			_ = q.writeAndRecycle(entry)
		case <-q.closed:
			q.drain()
			return
		}
	}
}

func (q *asyncQueue) drain() {
	deadline := time.NewTimer(q.drainTimeout)
	defer deadline.Stop()

	for {
		select {
		case entry := <-q.queue:
			_ = q.writeAndRecycle(entry)
		case <-deadline.C:
			return
		default:
			return
		}
	}
}

// shutdown stops the worker after it drained the queue. Entries left
// behind by a drain timeout are counted as dropped.
func (q *asyncQueue) shutdown() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.closed)
	q.mu.Unlock()

	q.wg.Wait()

	for {
		select {
		case entry := <-q.queue:
			q.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
		default:
			return
		}
	}
}
