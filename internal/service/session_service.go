package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SessionStore is the whitelist of issued access tokens. A token is only
// accepted while its session key exists.
type SessionStore interface {
	Save(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

const (
	sessionKeyPrefix = "session:"
	sessionScanCount = 100
)

type redisSessionStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewSessionStore(client *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{
		client: client,
		log:    log,
	}
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, userID.String(), tokenID)
}

func (s *redisSessionStore) Save(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisSessionStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, sessionKey(userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete session from Redis: %+v", err)
		return err
	}
	return nil
}

// RevokeAll removes every session of the user. SCAN is used instead of KEYS
// so a large keyspace does not block the server.
func (s *redisSessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s%s:*", sessionKeyPrefix, userID.String())

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, sessionScanCount).Result()
		if err != nil {
			s.log.Warnf("Failed to scan sessions: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.log.Warnf("Failed to delete sessions: %+v", err)
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
