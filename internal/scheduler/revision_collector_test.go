package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cylondata/docnav/internal/logger"
)

func TestRevisionCollectorCollect(t *testing.T) {
	store := &fakeStore{pruned: 3}
	rc := NewRevisionCollector(store, logger.NewNop(), time.Hour, 5)

	removed, err := rc.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 5, store.pruneKeep)
}

func TestRevisionCollectorDefaultKeep(t *testing.T) {
	store := &fakeStore{}
	rc := NewRevisionCollector(store, logger.NewNop(), time.Hour, 0)

	_, err := rc.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultKeepRevisions, store.pruneKeep)
}

func TestRevisionCollectorStartToleratesErrors(t *testing.T) {
	rc := NewRevisionCollector(&fakeStore{pruneErr: errBoom}, logger.NewNop(), time.Hour, 5)

	require.NoError(t, rc.Start(context.Background()))
	rc.Stop()
	rc.Stop()
}
