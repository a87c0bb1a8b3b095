package localstore

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "admin-console:slot:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each slot as a plain string key without expiry.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisClient(cfg RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(name string) string {
	return redisKeyPrefix + name
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKey(name)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, name string, value []byte) error {
	return s.client.Set(ctx, redisKey(name), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, redisKey(name)).Err()
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
