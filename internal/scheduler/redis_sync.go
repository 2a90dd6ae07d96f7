package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/cylondata/docnav/internal/index"
	"github.com/cylondata/docnav/internal/logger"
	redisstore "github.com/cylondata/docnav/internal/store/redis"
)

// RedisSyncer seeds the memory index from the last stored snapshot on startup
type RedisSyncer struct {
	store  SnapshotStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads the current snapshot from Redis into the memory index.
// A missing snapshot is not an error.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing sidebar from redis to memory")

	snap, err := rs.store.CurrentSnapshot(ctx)
	if errors.Is(err, redisstore.ErrNotFound) {
		rs.logger.Info("no sidebar snapshot found in redis")
		return nil
	}
	if err != nil {
		return err
	}

	if err := snap.Sidebar.Validate(); err != nil {
		return fmt.Errorf("stored snapshot %s is invalid: %w", snap.Digest, err)
	}

	rs.index.Update(snap.Sidebar, "redis:"+snap.Digest)

	rs.logger.Info("synced sidebar from redis",
		logger.String("digest", snap.Digest),
		logger.String("saved_from", snap.Source),
		logger.Int("sections", len(snap.Sidebar.Sections)))

	return nil
}
