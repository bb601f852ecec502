package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-catalog-client/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares one session between every client pointed at the same
// redis and profile.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(rdb *redis.Client, profile string) *RedisStore {
	return &RedisStore{rdb: rdb, key: fmt.Sprintf(redisx.KeySession, profile)}
}

func (s *RedisStore) Issue(ctx context.Context, tok Token) error {
	if err := s.rdb.Set(ctx, s.key, string(tok), redisx.TTLSession).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Current(ctx context.Context) (Token, bool, error) {
	v, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get session: %w", err)
	}
	return Token(v), true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
