package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Varun5711/bookmarkd/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// Cache is a two tier read-through cache: an in-process LRU in front of an
// optional redis. With a nil redis client it degrades to the LRU alone.
// Redis failures are treated as misses.
type Cache struct {
	l1     *LRU[string, []byte]
	l2     *redis.Client
	l2TTL  time.Duration
	prefix string
}

func New(prefix string, l1Capacity int, redisClient *redis.Client, l2TTL time.Duration) *Cache {
	return &Cache{
		l1:     NewLRU[string, []byte](l1Capacity),
		l2:     redisClient,
		l2TTL:  l2TTL,
		prefix: prefix,
	}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	key = c.key(key)

	if val, found := c.l1.Get(key); found {
		metrics.RecordCacheLookup("l1", true)
		return val, true
	}
	metrics.RecordCacheLookup("l1", false)

	if c.l2 == nil {
		return nil, false
	}

	val, err := c.l2.Get(ctx, key).Bytes()
	if err != nil {
		metrics.RecordCacheLookup("l2", false)
		return nil, false
	}
	metrics.RecordCacheLookup("l2", true)

	c.l1.Set(key, val)
	return val, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	key = c.key(key)

	c.l1.Set(key, value)
	if c.l2 == nil {
		return nil
	}
	return c.l2.Set(ctx, key, value, c.l2TTL).Err()
}

func (c *Cache) evict(ctx context.Context, key string) error {
	key = c.key(key)

	c.l1.Delete(key)
	if c.l2 == nil {
		return nil
	}
	err := c.l2.Del(ctx, key).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, found := c.Get(ctx, key)
	if !found {
		return false, nil
	}

	// an entry that no longer decodes is dropped from both tiers
	if err := json.Unmarshal(val, dest); err != nil {
		if evictErr := c.evict(ctx, key); evictErr != nil {
			err = errors.Join(err, evictErr)
		}
		return false, err
	}

	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, data)
}
