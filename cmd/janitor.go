package cmd

import (
	"context"
	"time"

	"hirehub/internal/data/repository"

	"go.uber.org/zap"
)

// RunJanitor purges long-expired sessions every interval until ctx is cancelled.
func RunJanitor(ctx context.Context, sessions repository.SessionRepository, every time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("Failed to clean expired sessions", zap.Error(err))
				}
				continue
			}
			if n > 0 {
				logger.Info("Cleaned expired sessions", zap.Int64("count", n))
			}
		}
	}
}
