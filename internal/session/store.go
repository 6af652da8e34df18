package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appErr "github.com/tripshield/backend/pkg/errors"
)

// CookieName is the session cookie exposed to clients.
const CookieName = "session"

const keyPrefix = "session:"

// Store resolves opaque session tokens to user ids. Tokens live in redis
// with a TTL; the cookie carries only the token, never the identity.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Destroy(ctx context.Context, token string) error
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "create session failed")
	}
	return token, nil
}

func (s *redisStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, appErr.New(appErr.CodeUnauthorized, "Session invalid")
	}
	if err != nil {
		return uuid.Nil, appErr.Wrap(err, appErr.CodeInternal, "resolve session failed")
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, appErr.Wrap(err, appErr.CodeUnauthorized, "Session invalid")
	}
	return id, nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "destroy session failed")
	}
	return nil
}
