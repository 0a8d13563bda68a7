package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps the session under two keys sharing a prefix. Both keys
// are written and removed inside one MULTI/EXEC transaction.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisClient returns a go-redis client for redisURL after a ping.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Load(ctx context.Context) (string, []byte, error) {
	vals, err := b.client.MGet(ctx, b.key(TokenKey), b.key(ProfileKey)).Result()
	if err != nil {
		return "", nil, fmt.Errorf("redis mget: %w", err)
	}
	token, _ := vals[0].(string)
	if token == "" {
		return "", nil, ErrNotFound
	}
	profile, _ := vals[1].(string)
	return token, []byte(profile), nil
}

func (b *RedisBackend) Save(ctx context.Context, token string, profile []byte) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.key(TokenKey), token, 0)
		pipe.Set(ctx, b.key(ProfileKey), profile, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key(TokenKey), b.key(ProfileKey)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

func (b *RedisBackend) key(name string) string {
	return b.prefix + name
}
