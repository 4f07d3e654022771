package sink

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bbqjunction/tabletalk/summary"
)

const (
	// DefaultMaxAttempts caps delivery tries per record.
	DefaultMaxAttempts = 3

	// defaultQueueSize bounds the in-flight backlog. When the queue is full
	// new records are dropped rather than blocking conversations.
	defaultQueueSize = 256

	retryBackoff = 2 * time.Second
)

// Retrier wraps a Sink with a bounded queue and a background worker that
// retries failed deliveries. Submit never blocks.
type Retrier struct {
	inner       Sink
	maxAttempts int
	backoff     time.Duration

	queue chan summary.LogRecord

	closeOnce sync.Once
	done      chan struct{}
	finished  chan struct{}
}

// NewRetrier starts the delivery worker. maxAttempts <= 0 keeps the default.
func NewRetrier(inner Sink, maxAttempts int) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	r := &Retrier{
		inner:       inner,
		maxAttempts: maxAttempts,
		backoff:     retryBackoff,
		queue:       make(chan summary.LogRecord, defaultQueueSize),
		done:        make(chan struct{}),
		finished:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Submit enqueues the record. A full queue drops it with a warning; the
// context is unused because enqueueing is instant. The queue channel is
// never closed, so a Submit racing Close drops the record instead of
// panicking.
func (r *Retrier) Submit(_ context.Context, rec summary.LogRecord) error {
	select {
	case <-r.done:
		log.Printf("⚠️ log sink closed, dropping record")
		return nil
	default:
	}

	select {
	case r.queue <- rec:
	default:
		log.Printf("⚠️ log sink queue full, dropping record")
	}
	return nil
}

// Close stops the worker after draining whatever is already queued.
func (r *Retrier) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	<-r.finished
}

func (r *Retrier) run() {
	defer close(r.finished)
	for {
		select {
		case rec := <-r.queue:
			r.deliver(rec)
		case <-r.done:
			// Drain whatever made it into the queue, then stop.
			for {
				select {
				case rec := <-r.queue:
					r.deliver(rec)
				default:
					return
				}
			}
		}
	}
}

func (r *Retrier) deliver(rec summary.LogRecord) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := r.inner.Submit(ctx, rec)
		cancel()
		if err == nil {
			return
		}
		log.Printf("⚠️ log delivery attempt %d/%d failed: %v", attempt, r.maxAttempts, err)
		if attempt < r.maxAttempts {
			time.Sleep(r.backoff)
		}
	}
	log.Printf("❌ giving up on log record after %d attempts", r.maxAttempts)
}
