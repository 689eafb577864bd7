package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const maxUpdateRetries = 10

// RedisStateClient stores state in Redis.
type RedisStateClient struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStateClient wraps client and checks the connection.
func NewRedisStateClient(ctx context.Context, client *redis.Client, log *slog.Logger) (*RedisStateClient, error) {
	if log == nil {
		log = slog.Default()
	}
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	log.Info("connected to redis", slog.String("addr", client.Options().Addr))

	return &RedisStateClient{
		client: client,
		logger: log,
	}, nil
}

// Set sets a key-value pair in Redis with the given expiration.
func (r *RedisStateClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *RedisStateClient) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, err
}

// Update runs fn inside a WATCH/MULTI transaction and retries when another
// writer touched the key in between.
func (r *RedisStateClient) Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		exists := true
		if errors.Is(err, redis.Nil) {
			exists = false
		} else if err != nil {
			return err
		}

		value, err := fn(current, exists)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		r.logger.Debug("redis update conflict, retrying", slog.String("key", key), slog.Int("attempt", i+1))
	}
	return fmt.Errorf("%w: %s", ErrConflict, key)
}

func (r *RedisStateClient) Ping(ctx context.Context) error {
	_, err := r.client.Ping(ctx).Result()
	return err
}

// Close releases the underlying connection pool.
func (r *RedisStateClient) Close() error {
	return r.client.Close()
}
