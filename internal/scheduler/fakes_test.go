package scheduler

import (
	"context"
	"errors"
	"sync"

	"github.com/cylondata/docnav/internal/domain"
	redisstore "github.com/cylondata/docnav/internal/store/redis"
)

type fakeSource struct {
	mu   sync.Mutex
	spec *domain.SidebarSpec
	err  error
	n    int
}

func (f *fakeSource) Load() (*domain.SidebarSpec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	if f.err != nil {
		return nil, f.err
	}
	return f.spec.Clone(), nil
}

func (f *fakeSource) set(spec *domain.SidebarSpec, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spec, f.err = spec, err
}

func (f *fakeSource) loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

type fakeStore struct {
	mu        sync.Mutex
	saved     []string
	current   *redisstore.Snapshot
	saveErr   error
	pruneKeep int
	pruned    int
	pruneErr  error
}

func (f *fakeStore) SaveSnapshot(_ context.Context, spec *domain.SidebarSpec, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, spec.Digest())
	f.current = &redisstore.Snapshot{Digest: spec.Digest(), Source: source, Sidebar: spec.Clone()}
	return nil
}

func (f *fakeStore) CurrentSnapshot(context.Context) (*redisstore.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return nil, redisstore.ErrNotFound
	}
	return f.current, nil
}

func (f *fakeStore) PruneRevisions(_ context.Context, keep int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruneKeep = keep
	return f.pruned, f.pruneErr
}

func (f *fakeStore) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

var errBoom = errors.New("boom")
