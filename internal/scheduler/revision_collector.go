package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/cylondata/docnav/internal/logger"
)

const (
	// DefaultKeepRevisions is how many sidebar revisions are kept in redis
	DefaultKeepRevisions = 20
)

// RevisionCollector prunes old sidebar revisions from the store
type RevisionCollector struct {
	store    SnapshotStore
	logger   logger.Logger
	interval time.Duration
	keep     int
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRevisionCollector creates a new revision collector
func NewRevisionCollector(
	store SnapshotStore,
	log logger.Logger,
	interval time.Duration,
	keep int,
) *RevisionCollector {
	if keep < 1 {
		keep = DefaultKeepRevisions
	}

	return &RevisionCollector{
		store:    store,
		logger:   log,
		interval: interval,
		keep:     keep,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic pruning process
func (rc *RevisionCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if _, err := rc.Collect(ctx); err != nil {
		rc.logger.Warn("initial revision pruning failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(rc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := rc.Collect(ctx); err != nil {
					rc.logger.Error("revision pruning failed",
						logger.Error(err))
				}
			case <-rc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (rc *RevisionCollector) Stop() {
	rc.stopOnce.Do(func() { close(rc.stopCh) })
}

// Collect removes revisions beyond the newest keep and returns how many went.
func (rc *RevisionCollector) Collect(ctx context.Context) (int, error) {
	removed, err := rc.store.PruneRevisions(ctx, rc.keep)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		rc.logger.Info("pruned old sidebar revisions",
			logger.Int("removed", removed),
			logger.Int("kept", rc.keep))
	} else {
		rc.logger.Debug("no sidebar revisions to prune")
	}
	return removed, nil
}
