// Package batcher buffers items in the background and hands them to a flush
// callback in size- or time-bounded batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once Stop has been called.
var ErrStopped = errors.New("batcher stopped")

// Config bounds batch size, batch age and flush rate.
type Config struct {
	// FlushSize is the item count that triggers a flush. Values below 1 mean 1.
	FlushSize int
	// FlushInterval flushes a partial batch once it is this old.
	FlushInterval time.Duration
	// FlushesPerSecond paces flushes; 0 disables pacing.
	FlushesPerSecond int
}

// Option customizes a Batcher.
type Option func(*options)

type options struct {
	observe func(items int, err error, started time.Time)
}

// WithFlushObserver registers a hook called after every flush attempt.
func WithFlushObserver(observe func(items int, err error, started time.Time)) Option {
	return func(o *options) {
		o.observe = observe
	}
}

// Batcher collects items from concurrent producers and flushes them from a single goroutine.
type Batcher[T any] struct {
	flush    func(ctx context.Context, items []T) error
	size     int
	interval time.Duration
	limiter  ratelimit.Limiter
	observe  func(items int, err error, started time.Time)
	logger   *zap.Logger

	items    chan T
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New builds a Batcher. Nothing is flushed until Start is called. flush owns
// the slice it receives.
func New[T any](logger *zap.Logger, flush func(ctx context.Context, items []T) error, cfg Config, opts ...Option) *Batcher[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	size := max(cfg.FlushSize, 1)
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.FlushesPerSecond > 0 {
		limiter = ratelimit.New(cfg.FlushesPerSecond)
	}

	return &Batcher[T]{
		flush:    flush,
		size:     size,
		interval: interval,
		limiter:  limiter,
		observe:  o.observe,
		logger:   logger,
		items:    make(chan T, size*2),
		stop:     make(chan struct{}),
	}
}

// Start launches the flush loop. ctx is passed to every flush.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop ends the flush loop after writing everything already queued. Safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item, blocking while the queue is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	pending := make([]T, 0, b.size)
	for {
		select {
		case item := <-b.items:
			pending = append(pending, item)
			if len(pending) >= b.size {
				pending = b.write(ctx, pending)
			}
		case <-ticker.C:
			pending = b.write(ctx, pending)
		case <-b.stop:
			b.drain(ctx, pending)
			return
		case <-ctx.Done():
			b.drain(ctx, pending)
			return
		}
	}
}

// drain writes whatever is pending plus anything still sitting in the queue.
func (b *Batcher[T]) drain(ctx context.Context, pending []T) {
	for {
		select {
		case item := <-b.items:
			pending = append(pending, item)
			if len(pending) >= b.size {
				pending = b.write(ctx, pending)
			}
		default:
			b.write(ctx, pending)
			return
		}
	}
}

// write flushes pending and returns the emptied buffer for reuse.
func (b *Batcher[T]) write(ctx context.Context, pending []T) []T {
	if len(pending) == 0 {
		return pending
	}

	b.limiter.Take()
	batch := make([]T, len(pending))
	copy(batch, pending)

	started := time.Now()
	err := b.flush(ctx, batch)
	if b.observe != nil {
		b.observe(len(batch), err, started)
	}
	if err != nil {
		b.logger.Error("batch not flushed", zap.Int("size", len(batch)), zap.Error(err))
	} else {
		b.logger.Debug("batch flushed", zap.Int("size", len(batch)))
	}
	return pending[:0]
}
