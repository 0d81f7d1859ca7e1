package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lifetrack/stress-tracking-api/internal/core/ports"
)

const cacheTTL = time.Hour

// PredictionCache stores recent model responses keyed by a hash of the
// feature vector. A hit lets the orchestrator skip the remote call for an
// identical submission; entries and prediction rows are still written per
// request, so creation semantics are unchanged.
type PredictionCache struct {
	client *redis.Client
}

func NewPredictionCache(client *redis.Client) *PredictionCache {
	return &PredictionCache{client: client}
}

// Get returns the cached result for the feature vector, or (nil, nil) on miss.
func (c *PredictionCache) Get(ctx context.Context, features ports.EntryFeatures) (*ports.PredictionResult, error) {
	raw, err := c.client.Get(ctx, c.key(features)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("prediction cache get: %w", err)
	}

	var result ports.PredictionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("prediction cache decode: %w", err)
	}
	return &result, nil
}

// Set records the result for the feature vector (expires after cacheTTL).
func (c *PredictionCache) Set(ctx context.Context, features ports.EntryFeatures, result *ports.PredictionResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("prediction cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(features), raw, cacheTTL).Err()
}

func (c *PredictionCache) key(features ports.EntryFeatures) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%g|%s|%s|%g",
		features.SleepHours, features.WorkoutIntensity, features.SupplementIntake, features.ScreenTime)))
	return "predcache:" + hex.EncodeToString(sum[:16])
}
