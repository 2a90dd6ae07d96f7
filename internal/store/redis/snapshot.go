package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cylondata/docnav/internal/domain"
)

// ErrNotFound is returned when no snapshot exists for the requested revision.
var ErrNotFound = errors.New("sidebar snapshot not found")

// Snapshot is a stored sidebar revision.
type Snapshot struct {
	Digest  string              `json:"digest"`
	Source  string              `json:"source"`
	SavedAt time.Time           `json:"saved_at"`
	Sidebar *domain.SidebarSpec `json:"sidebar"`
}

// Store handles Redis operations for sidebar snapshots
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveSnapshot stores spec as a revision and marks it current.
// Saving a revision that already exists moves it to the head of the list.
func (s *Store) SaveSnapshot(ctx context.Context, spec *domain.SidebarSpec, source string) error {
	digest := spec.Digest()
	data, err := json.Marshal(Snapshot{
		Digest:  digest,
		Source:  source,
		SavedAt: time.Now().UTC(),
		Sidebar: spec,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, RevisionKey(digest), data, 0)
	pipe.LRem(ctx, KeyRevisions, 0, digest)
	pipe.LPush(ctx, KeyRevisions, digest)
	pipe.Set(ctx, KeyCurrent, digest, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", digest, err)
	}
	return nil
}

// CurrentSnapshot returns the revision marked current.
func (s *Store) CurrentSnapshot(ctx context.Context) (*Snapshot, error) {
	digest, err := s.client.Get(ctx, KeyCurrent).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get current revision: %w", err)
	}
	return s.GetSnapshot(ctx, digest)
}

// GetSnapshot retrieves a revision by digest
func (s *Store) GetSnapshot(ctx context.Context, digest string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, RevisionKey(digest)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, digest)
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return decodeSnapshot(digest, data)
}

// Revisions returns stored revision digests, newest first.
func (s *Store) Revisions(ctx context.Context) ([]string, error) {
	digests, err := s.client.LRange(ctx, KeyRevisions, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return digests, nil
}

// PruneRevisions deletes every revision beyond the newest keep, then sweeps
// revision keys that are no longer listed. The current revision is never
// deleted. It returns the number of revision keys removed.
func (s *Store) PruneRevisions(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be >= 1, got %d", keep)
	}

	// Scan before reading the list: a save racing the sweep lands in the
	// list atomically, so its key is either unseen or listed.
	keys, err := s.revisionKeys(ctx)
	if err != nil {
		return 0, err
	}

	listed, err := s.client.LRange(ctx, KeyRevisions, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list revisions: %w", err)
	}

	current, err := s.client.Get(ctx, KeyCurrent).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to get current revision: %w", err)
	}

	kept := []string{current}
	if len(listed) > keep {
		kept = append(kept, listed[:keep]...)
	} else {
		kept = append(kept, listed...)
	}

	pipe := s.client.TxPipeline()
	queued := 0
	if len(listed) > keep {
		for _, digest := range listed[keep:] {
			if digest == current {
				continue
			}
			pipe.LRem(ctx, KeyRevisions, 0, digest)
			queued++
		}
	}
	orphans := orphanKeys(keys, kept)
	for _, key := range orphans {
		pipe.Del(ctx, key)
	}
	if queued+len(orphans) == 0 {
		return 0, nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to prune revisions: %w", err)
	}
	return len(orphans), nil
}

func (s *Store) revisionKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, KeyPrefixRevision+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan revision keys: %w", err)
	}
	return keys, nil
}

// orphanKeys returns the revision keys whose digest is not in keep.
// Keys that do not parse as revision keys are left alone.
func orphanKeys(keys, keep []string) []string {
	kept := make(map[string]bool, len(keep))
	for _, digest := range keep {
		kept[digest] = true
	}

	var orphans []string
	for _, key := range keys {
		digest, err := ExtractDigest(key)
		if err != nil || kept[digest] {
			continue
		}
		orphans = append(orphans, key)
	}
	return orphans
}

func decodeSnapshot(digest string, data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Sidebar == nil {
		return nil, fmt.Errorf("snapshot %s has no sidebar", digest)
	}
	if got := snap.Sidebar.Digest(); got != digest {
		return nil, fmt.Errorf("snapshot %s is corrupt: content digest %s", digest, got)
	}
	return &snap, nil
}
