package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/worker"
)

func TestPool_ExecutesTasks(t *testing.T) {
	p := worker.NewPool(worker.PoolConfig{Workers: 2, QueueSize: 8})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	done := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		err := p.Enqueue("test-task", func(ctx context.Context) error {
			done <- struct{}{}
			return nil
		})
		if err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("task %d did not run", i)
		}
	}
}

func TestPool_FullQueue(t *testing.T) {
	// No workers started; the queue fills and Enqueue must refuse instead of
	// blocking or dropping.
	p := worker.NewPool(worker.PoolConfig{Workers: 1, QueueSize: 2})

	noop := func(ctx context.Context) error { return nil }
	if err := p.Enqueue("a", noop); err != nil {
		t.Fatalf("enqueue 1: %v", err)
	}
	if err := p.Enqueue("b", noop); err != nil {
		t.Fatalf("enqueue 2: %v", err)
	}

	if err := p.Enqueue("c", noop); !errors.Is(err, domain.ErrQueueFull) {
		t.Fatalf("got %v, want ErrQueueFull", err)
	}
}

func TestPool_DrainsQueueOnShutdown(t *testing.T) {
	// Queued tasks are events already acked to the gateway; cancellation must
	// not lose them.
	p := worker.NewPool(worker.PoolConfig{Workers: 2, QueueSize: 16})

	var applied atomic.Int32
	for i := 0; i < 10; i++ {
		err := p.Enqueue("credit", func(ctx context.Context) error {
			applied.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop")
	}

	if got := applied.Load(); got != 10 {
		t.Errorf("applied = %d, want all 10 queued tasks to run before Start returns", got)
	}

	noop := func(ctx context.Context) error { return nil }
	if err := p.Enqueue("late", noop); !errors.Is(err, domain.ErrQueueFull) {
		t.Errorf("enqueue after shutdown: got %v, want ErrQueueFull", err)
	}
}

func TestPool_RetriesTransientFailures(t *testing.T) {
	p := worker.NewPool(worker.PoolConfig{Workers: 1, QueueSize: 2, MaxRetries: 3})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	var attempts atomic.Int32
	done := make(chan struct{})

	err := p.Enqueue("flaky", func(ctx context.Context) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("task never succeeded")
	}

	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}
