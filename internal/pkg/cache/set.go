package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Set is a redis-backed keyed cache. Values are encoded with msgpack under
// "<prefix>:<key>".
type Set[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	client *redis.Client
	prefix string
}

func NewSet[T any](client *redis.Client, prefix string) *Set[T] {
	return &Set[T]{
		client: client,
		prefix: prefix + ":",
	}
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(key string, dest *T) error {
	key = c.key(key)
	resp, err := c.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return err
	}
	err = msgpack.Unmarshal(resp, dest)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal value from msgpack from redis")
		return err
	}
	return nil
}

func (c *Set[T]) Set(key string, value T, expire time.Duration) error {
	key = c.key(key)
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Msg("setting value to redis")
	}
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return err
	}
	err = c.client.Set(context.Background(), key, b, expire).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

// MutexGetSet gets value from cache and writes to dest, or if the key does not exists, it executes valueFunc
// to get cache value if the key still not exists when serially dispatched, sets value to cache and
// writes value to dest.
// The first return value means whether the value is got from cache or not. True means calculated; False means getting from redis.
func (c *Set[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	err := c.Get(key, dest)
	if err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Str("key", key).Msg("failed to get value from redis in MutexGetSet; falling back to valueFunc")
	}

	return true, c.slowMutexGetSet(key, dest, valueFunc, expire)
}

func (c *Set[T]) slowMutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()
	if err := c.Get(key, dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		return err
	}

	// a broken cache never fails the caller
	_ = c.Set(key, value, expire)

	*dest = value
	return nil
}

func (c *Set[T]) Delete(key string) error {
	key = c.key(key)
	if err := c.client.Del(context.Background(), key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete value from redis")
		return err
	}

	return nil
}

// Flush removes every key of this set.
func (c *Set[T]) Flush() error {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 1000).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Error().Err(err).Str("prefix", c.prefix).Msg("failed to scan cache keys")
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Str("prefix", c.prefix).Msg("failed to flush cache")
		return err
	}
	return nil
}
