package scheduler

import (
	"context"

	"github.com/cylondata/docnav/internal/domain"
	redisstore "github.com/cylondata/docnav/internal/store/redis"
)

// SidebarSource yields the sidebar to serve.
type SidebarSource interface {
	Load() (*domain.SidebarSpec, error)
}

// SnapshotStore persists served sidebars. *redisstore.Store implements it.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, spec *domain.SidebarSpec, source string) error
	CurrentSnapshot(ctx context.Context) (*redisstore.Snapshot, error)
	PruneRevisions(ctx context.Context, keep int) (int, error)
}
