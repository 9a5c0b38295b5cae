package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/crop-recommender/config"
	"github.com/dustin/crop-recommender/internal/observability"
	"github.com/dustin/crop-recommender/internal/utils"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/jonboulle/clockwork"
)

// service implements the Service interface
type service struct {
	repo      Repository
	retention time.Duration
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *logger.Logger
}

// NewService creates a history service with validation and defaults
func NewService(cfg *config.HistoryConfig, repo Repository, clock clockwork.Clock, metrics *observability.Metrics, log *logger.Logger) (Service, error) {
	// Set defaults for nil or empty config values
	retention := 30 * 24 * time.Hour
	if cfg != nil && cfg.Retention != "" {
		duration, err := time.ParseDuration(cfg.Retention)
		if err != nil {
			return nil, fmt.Errorf("invalid history retention '%s': %v", cfg.Retention, err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("invalid history retention '%s': must be positive", cfg.Retention)
		}
		retention = duration
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &service{
		repo:      repo,
		retention: retention,
		clock:     clock,
		metrics:   metrics,
		logger:    log.WithComponent("history-service"),
	}, nil
}

func (s *service) List(ctx context.Context, page, limit int) ([]*Record, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	records, err := s.repo.List(ctx, utils.PageOffset(page, limit), limit)
	if err != nil {
		s.logger.Error("Failed to list prediction history: " + err.Error())
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count prediction history: " + err.Error())
		return nil, 0, err
	}

	return records, total, nil
}

// Prune deletes records older than the retention window
func (s *service) Prune(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.retention)

	deleted, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to prune prediction history before " + cutoff.Format(time.RFC3339) + ": " + err.Error())
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.HistoryPruned.Add(float64(deleted))
	}
	s.logger.Info(fmt.Sprintf("Pruned %d prediction history records older than %s", deleted, cutoff.Format(time.RFC3339)))

	return deleted, nil
}
