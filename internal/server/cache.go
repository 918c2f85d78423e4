package server

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// TileCache stores rendered SVG bodies in Redis so repeated viewport
// requests skip re-rendering. A nil cache is a no-op; the coordinate
// mappings themselves are never cached.
type TileCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTileCache wraps a connected Redis client.
func NewTileCache(client *redis.Client, prefix string, ttl time.Duration) *TileCache {
	return &TileCache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached body for key, if present.
func (c *TileCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Tile cache get failed: %v", err)
		return nil, false
	}
	return data, true
}

// Set stores body under key. Failures are logged, not surfaced.
func (c *TileCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, body, c.ttl).Err(); err != nil {
		log.Printf("Tile cache set failed: %v", err)
	}
}
