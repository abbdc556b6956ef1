package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Session records are stored as JSON blobs keyed by token, with the Redis
// TTL pinned to the absolute expiry instant. A key Redis evicts before the
// manager observes the expiry reads back as not-found, which resolves to
// the same deleted-session outcome.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) InsertSession(ctx context.Context, session models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	return s.client.Set(ctx, keyPrefix+session.ID, payload, ttl).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (models.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, store.ErrSessionNotFound
		}
		return models.Session{}, err
	}
	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
