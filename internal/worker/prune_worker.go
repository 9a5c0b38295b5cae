package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/crop-recommender/config"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Pruner removes expired records and reports how many were deleted
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// PruneWorker runs history retention on a cron schedule
type PruneWorker struct {
	cron          *cron.Cron
	pruner        Pruner
	pruneInterval time.Duration
	runTimeout    time.Duration
	logger        *logger.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
}

// NewPruneWorker creates a cron-scheduled worker with validation and defaults
func NewPruneWorker(cfg *config.WorkerConfig, pruner Pruner, log *logger.Logger) (*PruneWorker, error) {
	if pruner == nil {
		return nil, fmt.Errorf("prune worker requires a pruner")
	}

	// Set defaults for nil or empty config values
	pruneInterval := time.Hour
	if cfg != nil && cfg.PruneInterval != "" {
		duration, err := time.ParseDuration(cfg.PruneInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid prune interval '%s': %v", cfg.PruneInterval, err)
		}
		if duration < time.Minute {
			return nil, fmt.Errorf("invalid prune interval '%s': must be at least 1m", cfg.PruneInterval)
		}
		pruneInterval = duration
	}

	return &PruneWorker{
		// Overlapping runs are skipped when a prune outlasts the interval
		cron:          cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		pruner:        pruner,
		pruneInterval: pruneInterval,
		runTimeout:    pruneInterval,
		logger:        log.WithComponent("prune-worker"),
	}, nil
}

// Start schedules and begins the prune worker
func (w *PruneWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("prune worker already running")
	}

	schedule := durationToCronExpression(w.pruneInterval)
	w.logger.Info(fmt.Sprintf("Starting prune worker (every %v, schedule %q)", w.pruneInterval, schedule))

	entryID, err := w.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.runTimeout)
		defer cancel()
		_, _ = w.RunOnce(ctx)
	})
	if err != nil {
		w.logger.Error("Failed to schedule prune worker: " + err.Error())
		return err
	}

	w.entryID = entryID
	w.running = true
	w.cron.Start()

	w.logger.Info("Prune worker started successfully")

	return nil
}

// RunOnce executes a single prune pass outside the schedule
func (w *PruneWorker) RunOnce(ctx context.Context) (int64, error) {
	w.logger.Debug("Executing history prune")

	deleted, err := w.pruner.Prune(ctx)
	if err != nil {
		w.logger.Error("History prune failed: " + err.Error())
		return 0, err
	}

	w.logger.Debug(fmt.Sprintf("History prune completed, %d records removed", deleted))
	return deleted, nil
}

// Stop gracefully shuts down the prune worker, waiting for a running prune
func (w *PruneWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.logger.Info("Stopping prune worker")

	w.cron.Remove(w.entryID)
	ctx := w.cron.Stop()
	<-ctx.Done()

	w.running = false
	w.logger.Info("Prune worker stopped")

	return nil
}

// IsRunning reports whether the worker has a scheduled entry
func (w *PruneWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running && len(w.cron.Entries()) > 0
}

// durationToCronExpression prefers a readable cron expression and falls back to @every
func durationToCronExpression(duration time.Duration) string {
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())

	switch {
	case duration%time.Minute != 0:
		return "@every " + duration.String()
	case hours > 0 && hours < 24 && minutes%60 == 0 && 24%hours == 0:
		return fmt.Sprintf("0 */%d * * *", hours)
	case minutes > 0 && minutes < 60 && 60%minutes == 0:
		return fmt.Sprintf("*/%d * * * *", minutes)
	default:
		return "@every " + duration.String()
	}
}
