// Package session stores refresh-token sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"signalist_backend/internal/feature/auth/domain/entity"
	"signalist_backend/internal/feature/auth/usecase"

	"github.com/redis/go-redis/v9"
)

// revokedRetention keeps revoked sessions around so token reuse can be detected.
const revokedRetention = 24 * time.Hour

// SessionRedis implements usecase.SessionRepository using Redis.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", r.prefix, userID)
}

// Create persists a new session to Redis.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.sessionKey(session.ID), data, ttl)
		p.SAdd(ctx, r.userSessionsKey(session.UserID), session.ID)
		return nil
	})
	return err
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// findActive loads the user's valid sessions and prunes ids whose keys expired.
func (r *SessionRedis) findActive(ctx context.Context, userID string) ([]*entity.Session, error) {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var sessions []*entity.Session
	for _, id := range ids {
		session, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, usecase.ErrSessionNotFound) {
				r.client.SRem(ctx, r.userSessionsKey(userID), id)
				continue
			}
			return nil, err
		}
		if session.IsValid() {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// Revoke marks a session as revoked.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(id), data, revokedRetention).Err()
}

// RevokeAllByUserID revokes all sessions for a user.
func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID string) error {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.Revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return nil
}

// CountByUserID returns the number of active sessions for a user.
func (r *SessionRedis) CountByUserID(ctx context.Context, userID string) (int64, error) {
	sessions, err := r.findActive(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// DeleteOldestByUserID deletes the oldest active session for a user.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID string) error {
	sessions, err := r.findActive(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	oldest := sessions[0]
	for _, s := range sessions[1:] {
		if s.CreatedAt.Before(oldest.CreatedAt) {
			oldest = s
		}
	}

	if err := r.client.Del(ctx, r.sessionKey(oldest.ID)).Err(); err != nil {
		return err
	}
	return r.client.SRem(ctx, r.userSessionsKey(userID), oldest.ID).Err()
}
