package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "view:"
	versionKeyPrefix = "view-version:"
)

// putIfCurrent writes the variant only while the version key still holds ARGV[1].
// KEYS[1] is the view hash, KEYS[2] the version counter.
var putIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis stores each path as a hash whose fields are the variants, plus a
// counter per path that Invalidate increments.
func NewRedis(rdb *redis.Client, ttl time.Duration) ViewCache {
	return &redisCache{rdb: rdb, ttl: ttl}
}

// Connect opens a client and pings it once.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func Key(path string) string {
	return keyPrefix + path
}

func VersionKey(path string) string {
	return versionKeyPrefix + path
}

func (c *redisCache) Get(ctx context.Context, path, variant string, dst any) (bool, int64, error) {
	version, err := c.rdb.Get(ctx, VersionKey(path)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, fmt.Errorf("cache version %s: %w", path, err)
	}

	cached, err := c.rdb.HGet(ctx, Key(path), variant).Result()
	if errors.Is(err, redis.Nil) {
		return false, version, nil
	}
	if err != nil {
		return false, version, fmt.Errorf("cache get %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		return false, version, fmt.Errorf("cache decode %s: %w", path, err)
	}
	return true, version, nil
}

func (c *redisCache) Put(ctx context.Context, path, variant string, version int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", path, err)
	}
	keys := []string{Key(path), VersionKey(path)}
	if err := putIfCurrent.Run(ctx, c.rdb, keys, version, variant, string(data), c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("cache put %s: %w", path, err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, Key(p))
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, p := range paths {
			pipe.Incr(ctx, VersionKey(p))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
