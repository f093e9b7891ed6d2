package buildcache

import (
	"context"
	"sync"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// BuildCache implements the BuildCache port with an in-process map. The mutex
// keeps lookup and insert race-free when submissions are graded concurrently.
type BuildCache struct {
	mu      sync.RWMutex
	records map[string]domain.BuildRecord
}

// NewBuildCache creates an empty in-process build cache.
func NewBuildCache() *BuildCache {
	return &BuildCache{
		records: make(map[string]domain.BuildRecord),
	}
}

// Get returns the memoized record for sourceRoot, or nil when absent.
func (c *BuildCache) Get(_ context.Context, sourceRoot string) (*domain.BuildRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.records[sourceRoot]
	if !ok {
		return nil, nil
	}
	// copy so callers can't mutate the memoized record
	return &record, nil
}

// Put registers a record under its canonical source root.
func (c *BuildCache) Put(_ context.Context, sourceRoot string, record *domain.BuildRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[sourceRoot] = *record
	return nil
}

// Reset discards all memoized records.
func (c *BuildCache) Reset(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make(map[string]domain.BuildRecord)
	return nil
}
