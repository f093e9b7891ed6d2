package buildcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

const (
	buildKeyPrefix  = "build:"
	buildExpiration = 24 * time.Hour
)

// BuildCache implements the BuildCache port with Redis, so repeated grading
// runs on a shared box skip recompiling roots that were already built.
type BuildCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewBuildCache creates a new Redis build cache
func NewBuildCache(redisClient *redis.Client, logger primary.Logger) *BuildCache {
	return &BuildCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Get retrieves the memoized record for sourceRoot from Redis, or nil when
// absent.
func (c *BuildCache) Get(ctx context.Context, sourceRoot string) (*domain.BuildRecord, error) {
	recordJSON, err := c.redisClient.Get(ctx, buildKeyPrefix+sourceRoot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Error("Failed to get build record", "root", sourceRoot, "error", err)
		return nil, fmt.Errorf("failed to get build record: %w", err)
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		c.logger.Error("Failed to unmarshal build record", "root", sourceRoot, "error", err)
		return nil, fmt.Errorf("failed to unmarshal build record: %w", err)
	}
	return &record, nil
}

// Put registers a record under its canonical source root with an expiration,
// so stale artifacts age out between grading sessions.
func (c *BuildCache) Put(ctx context.Context, sourceRoot string, record *domain.BuildRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		c.logger.Error("Failed to marshal build record", "root", sourceRoot, "error", err)
		return fmt.Errorf("failed to marshal build record: %w", err)
	}

	if err := c.redisClient.Set(ctx, buildKeyPrefix+sourceRoot, recordJSON, buildExpiration).Err(); err != nil {
		c.logger.Error("Failed to save build record", "root", sourceRoot, "error", err)
		return fmt.Errorf("failed to save build record: %w", err)
	}
	return nil
}

// Reset removes every memoized build record.
func (c *BuildCache) Reset(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.redisClient.Scan(ctx, cursor, buildKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan build keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete build keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}
