package index

import (
	"sync"
	"time"

	"github.com/cylondata/docnav/internal/domain"
)

// MemoryIndex holds the sidebar currently being served.
// It is the primary source; Redis only seeds it on startup.
type MemoryIndex struct {
	mu         sync.RWMutex
	current    *domain.SidebarSpec
	digest     string    // Digest of current
	source     string    // where current came from (file path, "default", "redis")
	lastReload time.Time // Timestamp of last successful update
	lastError  error     // Last rejected reload, cleared on success
	lastFailed time.Time
}

// NewMemoryIndex creates an empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Update replaces the served sidebar. It reports whether the content changed.
func (idx *MemoryIndex) Update(spec *domain.SidebarSpec, source string) bool {
	clone := spec.Clone()
	digest := clone.Digest()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	changed := digest != idx.digest
	idx.current = clone
	idx.digest = digest
	idx.source = source
	idx.lastReload = time.Now()
	idx.lastError = nil
	return changed
}

// RecordFailure keeps the current sidebar and remembers why a reload was rejected.
func (idx *MemoryIndex) RecordFailure(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastError = err
	idx.lastFailed = time.Now()
}

// Current returns a copy of the served sidebar and its digest.
// ok is false until the first Update.
func (idx *MemoryIndex) Current() (spec *domain.SidebarSpec, digest string, ok bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.current == nil {
		return nil, "", false
	}
	return idx.current.Clone(), idx.digest, true
}

// Digest returns the digest of the served sidebar, or "" when empty.
func (idx *MemoryIndex) Digest() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.digest
}

// Loaded reports whether a sidebar is being served.
func (idx *MemoryIndex) Loaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.current != nil
}

// Source returns where the served sidebar was loaded from.
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last successful update
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// LastFailure returns when the last rejected reload happened and why.
func (idx *MemoryIndex) LastFailure() (time.Time, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastFailed, idx.lastError
}
