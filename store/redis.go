package store

import (
    "context"
    "fmt"
    "time"

    "github.com/go-redis/redis/v8"
)

type RedisKV struct {
    client *redis.Client
}

func NewRedisKV(redisURL string) (*RedisKV, error) {
    opt, err := redis.ParseURL(redisURL)
    if err != nil {
        return nil, fmt.Errorf("invalid Redis URL: %v", err)
    }

    client := redis.NewClient(opt)
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to Redis: %v", err)
    }

    return &RedisKV{client: client}, nil
}

// NewRedisKVFromClient reaproveita um cliente já conectado.
func NewRedisKVFromClient(client *redis.Client) *RedisKV {
    return &RedisKV{client: client}
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
    value, err := s.client.Get(ctx, key).Result()
    if err == redis.Nil {
        return "", false, nil
    }
    if err != nil {
        return "", false, fmt.Errorf("failed to read key %s: %v", key, err)
    }
    return value, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
    if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
        return fmt.Errorf("failed to write key %s: %v", key, err)
    }
    return nil
}

func (s *RedisKV) Client() *redis.Client {
    return s.client
}

func (s *RedisKV) Close() error {
    return s.client.Close()
}
