package fiberstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis stores fiber.Storage entries as plain keys under KeyPrefix so that
// every entry can carry its own expiration.
type Redis struct {
	Client    *redis.Client
	KeyPrefix string
}

// Redis implements fiber.Storage
var _ fiber.Storage = &Redis{}

func NewRedis(client *redis.Client, keyPrefix string) *Redis {
	return &Redis{
		Client:    client,
		KeyPrefix: keyPrefix,
	}
}

func (r *Redis) key(key string) string {
	return r.KeyPrefix + ":" + key
}

// Close implements fiber.Storage. The client is shared, so it is left open.
func (r *Redis) Close() error {
	return nil
}

// Delete implements fiber.Storage
func (r *Redis) Delete(key string) error {
	return r.Client.Del(context.Background(), r.key(key)).Err()
}

// Get implements fiber.Storage. A missing key yields nil, nil.
func (r *Redis) Get(key string) ([]byte, error) {
	b, err := r.Client.Get(context.Background(), r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return b, err
}

// Reset implements fiber.Storage
func (r *Redis) Reset() error {
	ctx := context.Background()
	iter := r.Client.Scan(ctx, 0, r.KeyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Set implements fiber.Storage
func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	return r.Client.Set(context.Background(), r.key(key), val, exp).Err()
}
