package livecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smarthelmet-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "smarthelmet:live:"

// DefaultTTL keeps live snapshots a little longer than the hardware
// reporting interval so the dashboard never reads a stale device as
// live.
const DefaultTTL = 60 * time.Second

// Cache holds the most recent status snapshot per bike in Redis so
// dashboard reads don't hit MongoDB for data that changes every few
// seconds. MongoDB stays the durable copy; a cache miss just falls
// through to the bike document.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// SetStatus stores the bike's latest snapshot with TTL.
func (c *Cache) SetStatus(bikeID string, snapshot models.StatusSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal status snapshot: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+bikeID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache status for %s: %w", bikeID, err)
	}
	return nil
}

// GetStatus returns the cached snapshot, or nil on a cache miss.
func (c *Cache) GetStatus(bikeID string) (*models.StatusSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, keyPrefix+bikeID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached status for %s: %w", bikeID, err)
	}

	var snapshot models.StatusSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached status: %w", err)
	}

	return &snapshot, nil
}
