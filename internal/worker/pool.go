package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
)

// Pool runs post-acknowledgement reconciliation work. The webhook handler
// acks the gateway first; the effect lands here, where failures are retried
// and logged instead of vanishing with the response.
type Pool struct {
	tasks       chan task
	workers     int
	taskTimeout time.Duration
	maxRetries  uint64
	logger      *slog.Logger
	metrics     *metrics.Metrics
	stopping    atomic.Bool
}

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// PoolConfig configures the pool.
type PoolConfig struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
	MaxRetries  uint64
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
}

// NewPool creates a new Pool.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.TaskTimeout == 0 {
		cfg.TaskTimeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Pool{
		tasks:       make(chan task, cfg.QueueSize),
		workers:     cfg.Workers,
		taskTimeout: cfg.TaskTimeout,
		maxRetries:  cfg.MaxRetries,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
}

// Enqueue hands a task to the pool. It never blocks: a full queue returns
// domain.ErrQueueFull so the webhook responds 5xx and the gateway redelivers,
// rather than accepting work that would be dropped. A pool that has begun
// shutting down refuses new work the same way.
func (p *Pool) Enqueue(name string, fn func(ctx context.Context) error) error {
	if p.stopping.Load() {
		return domain.ErrQueueFull
	}

	select {
	case p.tasks <- task{name: name, fn: fn}:
		if p.metrics != nil {
			p.metrics.TasksQueued.Inc()
		}
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Start runs the workers until ctx is cancelled, then drains the queue before
// returning. Every queued task corresponds to an event already acknowledged
// to the gateway, which will not redeliver it, so cancellation stops intake
// but never abandons queued or in-flight work.
func (p *Pool) Start(ctx context.Context) error {
	p.logger.Info("worker pool started",
		slog.Int("workers", p.workers),
		slog.Int("queue_size", cap(p.tasks)))

	unhook := context.AfterFunc(ctx, func() { p.stopping.Store(true) })
	defer unhook()

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.run(ctx)
		}()
	}

	wg.Wait()
	p.logger.Info("worker pool stopped")

	return ctx.Err()
}

func (p *Pool) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.drain(ctx)
			return
		case t := <-p.tasks:
			if p.metrics != nil {
				p.metrics.TasksQueued.Dec()
			}
			p.execute(ctx, t)
		}
	}
}

// drain empties the remaining queue after cancellation. Enqueue refuses new
// work once shutdown begins, so the queue only shrinks here.
func (p *Pool) drain(ctx context.Context) {
	for {
		select {
		case t := <-p.tasks:
			if p.metrics != nil {
				p.metrics.TasksQueued.Dec()
			}
			p.execute(ctx, t)
		default:
			return
		}
	}
}

func (p *Pool) execute(ctx context.Context, t task) {
	// Detached so a shutdown signal does not cancel work already acked to
	// the gateway.
	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.taskTimeout)
	defer cancel()

	attempt := 0
	operation := func() error {
		attempt++
		err := t.fn(taskCtx)
		if err != nil && attempt > 1 && p.metrics != nil {
			p.metrics.TaskRetries.Inc()
		}
		return err
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries),
		taskCtx,
	)

	if err := backoff.Retry(operation, b); err != nil {
		if p.metrics != nil {
			p.metrics.TaskFailures.Inc()
		}
		p.logger.Error("task failed after retries",
			slog.String("task", t.name),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()))
	}
}
