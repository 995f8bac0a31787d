package catalog

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartPruning schedules periodic deletion of snapshots older than
// retention. Returns the running scheduler; the caller stops it on
// shutdown.
func (s *Store) StartPruning(schedule string, retention time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		removed, err := s.Prune(ctx, retention)
		if err != nil {
			s.logger.Error("snapshot pruning failed", zap.Error(err))
			return
		}
		if removed > 0 {
			s.logger.Info("pruned stale snapshots", zap.Int64("removed", removed))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
