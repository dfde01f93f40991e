package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe redis wrapper for the user read-through cache. Every
// error, including an unreachable redis, degrades to a cache miss; the
// credential store stays the source of truth. A nil *Client is valid and
// behaves as an always-empty cache, which tests rely on.
type Client struct {
	client *redis.Client
}

// New connects to redis at addr.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) ready() bool {
	return c != nil && c.client != nil
}

// Get returns the cached value, or nil on a miss or any redis failure.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.ready() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value under key for ttl. Redis failures are swallowed; the
// entry simply is not cached.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.ready() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete drops key. Used to invalidate after updates and deletes; a failed
// delete only means a stale entry lives until its TTL.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.ready() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}
