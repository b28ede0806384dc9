package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-soft wrapper around redis. Every operation degrades to a
// cache miss when redis is unreachable, so dashboard aggregates and the token
// blacklist never take a request down with them.
type Client struct {
	rdb *redis.Client
}

// New connects to the redis instance at addr.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) ready() bool {
	return c != nil && c.rdb != nil
}

// Get returns the value for key, or nil when the key is absent or redis is
// unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.ready() {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both read as a miss
		return nil, nil
	}
	return data, nil
}

// Set stores value under key for ttl. Redis errors are swallowed.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.ready() {
		_ = c.rdb.Set(ctx, key, value, ttl).Err()
	}
	return nil
}

// Delete removes key. Redis errors are swallowed.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.ready() {
		_ = c.rdb.Del(ctx, key).Err()
	}
	return nil
}

// GetJSON unmarshals a cached value into dst. Returns false on miss.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.Get(ctx, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// stale or corrupt entry, treat as miss
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and stores it with TTL.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
