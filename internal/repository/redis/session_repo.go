package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	sessionTokenPrefix = "login:user:token"
	sessionTokenExpire = 30 * time.Minute
)

// SessionRepository holds the current access token per user. One live
// session per user: a new login replaces the stored token, and banning a
// user deletes it so the ban bites before the JWT expires.
type SessionRepository struct{}

func key(userID uint64) string {
	return fmt.Sprintf("%s:%d", sessionTokenPrefix, userID)
}

func (r *SessionRepository) SaveToken(ctx context.Context, userID uint64, token string) error {
	if err := Client.Set(ctx, key(userID), token, sessionTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetToken(ctx context.Context, userID uint64) (string, error) {
	token, err := Client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) ExtendToken(ctx context.Context, userID uint64) error {
	if _, err := Client.Expire(ctx, key(userID), sessionTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteToken(ctx context.Context, userID uint64) error {
	if err := Client.Del(ctx, key(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
