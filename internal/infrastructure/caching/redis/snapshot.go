// Package redis caches the full record snapshot between store reads. Every
// write path invalidates the key, so a cached snapshot is never older than
// the last mutation issued by this process.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grabticket/bot/internal/domain"
)

const DefaultKey = "grabticket:records"

type SnapshotCache struct {
	rdb *redis.Client
	key string
}

func New(url, key string) (*SnapshotCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if key == "" {
		key = DefaultKey
	}
	return &SnapshotCache{rdb: rdb, key: key}, nil
}

func (c *SnapshotCache) Close() error { return c.rdb.Close() }

// Get returns the cached snapshot and whether one was present.
func (c *SnapshotCache) Get(ctx context.Context) ([]domain.Record, bool, error) {
	val, err := c.rdb.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var records []domain.Record
	if err := json.Unmarshal(val, &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, records []domain.Record, ttl time.Duration) error {
	bytes, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key, bytes, ttl).Err()
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}
