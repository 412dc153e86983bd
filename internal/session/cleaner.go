package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartCleaner evicts expired sessions with interval
func StartCleaner(
	ctx context.Context,
	store *Store,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := store.sweep(time.Now()); removed > 0 {
					log.Info("evicted expired sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}
