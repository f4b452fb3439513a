package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICache defines a general caching interface
type ICache[T any] interface {
	Get(context.Context, string) (*T, error)
	Set(context.Context, string, *T, ...time.Duration) error
	Delete(context.Context, string) error
	Exists(context.Context, string) (bool, error)
}

// IVersionedCache is a cache whose writes are ordered by a version number.
// Values must marshal a numeric "version" field; a true "tombstone" field
// marks a placeholder left by a writer.
type IVersionedCache[T any] interface {
	ICache[T]
	// SetIfNewer stores data unless the cached value is at least as new.
	// A tombstone is only beaten by a strictly older version. It reports
	// whether the value was written.
	SetIfNewer(ctx context.Context, field string, data *T, version int64, expire ...time.Duration) (bool, error)
}

// Cache implements the ICache interface on top of redis
type Cache[T any] struct {
	rc  redis.Cmdable
	key string
}

// NewCache creates a new Cache instance. Every field is stored under
// "<key>:<field>".
func NewCache[T any](rc redis.Cmdable, key string) *Cache[T] {
	return &Cache[T]{rc: rc, key: key}
}

// Key defines the cache key
func (c *Cache[T]) Key(field string) string {
	if c.key != "" {
		return fmt.Sprintf("%s:%s", c.key, field)
	}
	return field
}

// Get retrieves a single item from cache. A miss returns (nil, nil).
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, error) {
	if c.rc == nil {
		return nil, errors.New("redis client is nil, cannot get cache")
	}

	result, err := c.rc.Get(ctx, c.Key(field)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var row T
	if err = json.Unmarshal([]byte(result), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &row, nil
}

// Set saves a single item into cache
func (c *Cache[T]) Set(ctx context.Context, field string, data *T, expire ...time.Duration) error {
	if c.rc == nil {
		return errors.New("redis client is nil, cannot set cache")
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	exp := time.Duration(0)
	if len(expire) > 0 {
		exp = expire[0]
	}
	if err = c.rc.Set(ctx, c.Key(field), bytes, exp).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// setIfNewer compares the stored version before writing.
// KEYS[1] key, ARGV[1] payload, ARGV[2] version, ARGV[3] ttl in ms.
var setIfNewer = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur then
  local ok, doc = pcall(cjson.decode, cur)
  if ok and type(doc) == 'table' then
    local v = tonumber(doc['version'])
    local want = tonumber(ARGV[2])
    if v then
      if doc['tombstone'] == true then
        if want < v then return 0 end
      elseif want <= v then
        return 0
      end
    end
  end
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
else
  redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// SetIfNewer saves data only when it is newer than the cached value
func (c *Cache[T]) SetIfNewer(ctx context.Context, field string, data *T, version int64, expire ...time.Duration) (bool, error) {
	if c.rc == nil {
		return false, errors.New("redis client is nil, cannot set cache")
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("failed to marshal data: %w", err)
	}

	exp := time.Duration(0)
	if len(expire) > 0 {
		exp = expire[0]
	}
	n, err := setIfNewer.Run(ctx, c.rc, []string{c.Key(field)}, string(bytes), version, exp.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to set cache: %w", err)
	}
	return n == 1, nil
}

// Delete removes an item from cache
func (c *Cache[T]) Delete(ctx context.Context, field string) error {
	if c.rc == nil {
		return errors.New("redis client is nil, cannot delete cache")
	}

	if err := c.rc.Del(ctx, c.Key(field)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Exists checks if a key exists in cache
func (c *Cache[T]) Exists(ctx context.Context, field string) (bool, error) {
	if c.rc == nil {
		return false, errors.New("redis client is nil, cannot check existence")
	}

	n, err := c.rc.Exists(ctx, c.Key(field)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return n > 0, nil
}
