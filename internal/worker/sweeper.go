package worker

import (
	"context"
	"log/slog"
	"time"
)

// StaleLockReleaser is the sweep entry point exposed by the withdrawal
// usecase.
type StaleLockReleaser interface {
	SweepStaleLocks(ctx context.Context) (int64, error)
}

// LockSweeper periodically force-releases withdrawal locks whose gateway
// outcome never arrived. A lock with no forward progress would otherwise
// block the wallet forever.
type LockSweeper struct {
	releaser StaleLockReleaser
	interval time.Duration
	logger   *slog.Logger
}

// NewLockSweeper creates a new LockSweeper.
func NewLockSweeper(releaser StaleLockReleaser, interval time.Duration, logger *slog.Logger) *LockSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LockSweeper{
		releaser: releaser,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *LockSweeper) Start(ctx context.Context) error {
	s.logger.Info("lock sweeper started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("lock sweeper shutting down")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.releaser.SweepStaleLocks(ctx); err != nil {
				s.logger.Error("lock sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}
