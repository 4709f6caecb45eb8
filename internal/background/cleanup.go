// Package background runs maintenance loops that live for the whole process.
package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/srpnetwork/realty-api/internal/repositories"
)

const sweepTimeout = 30 * time.Second

// TokenSweeper prunes revoked tokens whose natural expiry has passed. Expired
// entries are dead weight: the token they blacklist can no longer validate
// anyway.
type TokenSweeper struct {
	revocations *repositories.TokenRevocationRepository
	logger      *slog.Logger
	interval    time.Duration
	stop        chan struct{}
}

func NewTokenSweeper(revocations *repositories.TokenRevocationRepository, logger *slog.Logger, interval time.Duration) *TokenSweeper {
	return &TokenSweeper{
		revocations: revocations,
		logger:      logger,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

// Run sweeps once immediately, then on every interval tick until Stop is
// called or ctx is cancelled. Blocks; run it on its own goroutine.
func (s *TokenSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stop:
			s.logger.Info("token sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("token sweeper context cancelled")
			return
		}
	}
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	pruned, err := s.revocations.CleanupExpiredTokens(sweepCtx)
	if err != nil {
		s.logger.Error("token sweep failed", slog.Any("error", err))
		return
	}

	if pruned > 0 {
		s.logger.Info("pruned expired revoked tokens", slog.Int64("count", pruned))
	}
}

func (s *TokenSweeper) Stop() {
	close(s.stop)
}
