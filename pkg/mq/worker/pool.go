package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-waitqueue/pkg/settings"
)

const defaultWorkers = 4

// Pool runs a fixed number of consumers that take items from a Source and
// pass them to a Handler.
//
// Behavior:
//   - Each worker parks on the source while it is empty; the queue wakes one
//     worker per item, so idle workers cost nothing.
//   - Handler errors and panics are logged and counted, the worker moves on.
//   - When the Run context is cancelled, each worker keeps draining queued
//     items without blocking for up to ShutdownTimeout, then exits.
type Pool[T any] struct {
	src     Source[T]
	handler Handler[T]
	workers int
	drain   time.Duration
	logger  *zap.Logger

	processed atomic.Uint64
	failed    atomic.Uint64
}

// New creates a Pool. A nil logger disables logging.
func New[T any](src Source[T], h Handler[T], cfg settings.Worker, logger *zap.Logger) *Pool[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pool[T]{
		src:     src,
		handler: h,
		workers: cfg.Workers,
		drain:   time.Duration(cfg.ShutdownTimeout) * time.Millisecond,
		logger:  logger.Named("worker"),
	}
}

// Run blocks until ctx is cancelled and every worker has exited.
// It returns nil on cancellation, or the first error a worker got from the
// source (for example a destroyed queue), which also stops the other workers.
func (p *Pool[T]) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		id := i
		g.Go(func() error {
			return p.loop(gctx, id)
		})
	}

	p.logger.Info("worker pool started", zap.Int("workers", p.workers))
	err := g.Wait()
	p.logger.Info("worker pool stopped",
		zap.Uint64("processed", p.processed.Load()),
		zap.Uint64("failed", p.failed.Load()),
		zap.Error(err))
	return err
}

// Processed returns the number of items handled without error.
func (p *Pool[T]) Processed() uint64 { return p.processed.Load() }

// Failed returns the number of items whose handler failed or panicked.
func (p *Pool[T]) Failed() uint64 { return p.failed.Load() }

func (p *Pool[T]) loop(ctx context.Context, id int) error {
	log := p.logger.With(zap.Int("worker", id))

	for {
		if ctx.Err() != nil {
			p.drainQueued(ctx, log)
			return nil
		}

		item, err := p.src.DequeueContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.drainQueued(ctx, log)
				return nil
			}
			return errors.Wrapf(err, "worker %d", id)
		}
		p.handle(ctx, log, item)
	}
}

// drainQueued handles what is still queued after cancellation, bounded by the
// drain timeout.
func (p *Pool[T]) drainQueued(ctx context.Context, log *zap.Logger) {
	if p.drain <= 0 {
		return
	}

	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.drain)
	defer cancel()

	drained := 0
	for hctx.Err() == nil {
		item, ok := p.src.TryDequeue()
		if !ok {
			break
		}
		p.handle(hctx, log, item)
		drained++
	}

	if drained > 0 {
		log.Debug("drained queued items", zap.Int("count", drained))
	}
}

func (p *Pool[T]) handle(ctx context.Context, log *zap.Logger, item T) {
	if err := p.safeHandle(ctx, item); err != nil {
		p.failed.Inc()
		log.Warn("handler failed", zap.Error(err))
		return
	}
	p.processed.Inc()
}

func (p *Pool[T]) safeHandle(ctx context.Context, item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("handler panic: %v", r)
		}
	}()
	return p.handler.Handle(ctx, item)
}
