package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cylondata/docnav/internal/domain"
	"github.com/cylondata/docnav/internal/index"
	"github.com/cylondata/docnav/internal/logger"
	"github.com/cylondata/docnav/internal/metrics"
)

// SidebarReloader handles periodic, manual and file-change reloads of the sidebar
type SidebarReloader struct {
	source        SidebarSource
	sourceName    string
	store         SnapshotStore // nil when redis is disabled
	index         *index.MemoryIndex
	metrics       *metrics.Metrics
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger <-chan struct{}
	mu            sync.Mutex // serializes Reload
}

// NewSidebarReloader creates a new sidebar reloader
func NewSidebarReloader(
	source SidebarSource,
	sourceName string,
	store SnapshotStore,
	idx *index.MemoryIndex,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *SidebarReloader {
	return &SidebarReloader{
		source:        source,
		sourceName:    sourceName,
		store:         store,
		index:         idx,
		metrics:       m,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the sidebar once and then keeps it fresh in the background.
// A sidebar that cannot be loaded or is invalid at startup is fatal, unless
// the index was already seeded from a stored snapshot.
func (sr *SidebarReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		if !sr.index.Loaded() {
			return fmt.Errorf("initial reload failed: %w", err)
		}
		sr.logger.Warn("initial reload failed, serving stored snapshot",
			logger.String("digest", sr.index.Digest()),
			logger.Error(err))
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.reloadAndLog(ctx)
			case <-sr.manualTrigger:
				sr.logger.Info("reload requested")
				sr.reloadAndLog(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (sr *SidebarReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

func (sr *SidebarReloader) reloadAndLog(ctx context.Context) {
	if err := sr.Reload(ctx); err != nil {
		sr.logger.Error("failed to reload sidebar, keeping the current one",
			logger.String("source", sr.sourceName),
			logger.Error(err))
	}
}

// Reload loads and validates the sidebar, then updates index and store.
// On any error the served sidebar is left untouched.
func (sr *SidebarReloader) Reload(ctx context.Context) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	sr.logger.Debug("reloading sidebar", logger.String("source", sr.sourceName))

	spec, err := sr.source.Load()
	if err != nil {
		sr.metrics.ObserveReload(metrics.ResultError)
		sr.index.RecordFailure(err)
		return fmt.Errorf("failed to load sidebar: %w", err)
	}

	if err := spec.Validate(); err != nil {
		violations := domain.Violations(err)
		for _, v := range violations {
			sr.logger.Warn("sidebar violation",
				logger.String("section", v.Section),
				logger.Int("entry", v.Index),
				logger.String("reason", v.Reason))
		}
		sr.metrics.ObserveReload(metrics.ResultInvalid)
		sr.index.RecordFailure(err)
		return fmt.Errorf("sidebar from %s has %d violation(s): %w", sr.sourceName, len(violations), err)
	}

	changed := sr.index.Update(spec, sr.sourceName)
	sr.metrics.ObserveSidebar(spec)
	if !changed {
		sr.metrics.ObserveReload(metrics.ResultUnchanged)
		sr.logger.Debug("sidebar unchanged", logger.String("digest", spec.Digest()))
		return nil
	}

	sr.metrics.ObserveReload(metrics.ResultUpdated)
	sr.logger.Info("sidebar loaded",
		logger.String("source", sr.sourceName),
		logger.String("digest", spec.Digest()),
		logger.Int("sections", len(spec.Sections)),
		logger.Int("docs", spec.EntryCount(domain.KindDoc)),
		logger.Int("links", spec.EntryCount(domain.KindLink)))

	// Update Redis store (best effort)
	if sr.store != nil {
		if err := sr.store.SaveSnapshot(ctx, spec, sr.sourceName); err != nil {
			sr.logger.Warn("failed to save sidebar snapshot to redis",
				logger.Error(err))
			// Don't fail - memory index is the primary source
		} else {
			sr.logger.Debug("sidebar snapshot saved to redis")
		}
	}

	return nil
}
