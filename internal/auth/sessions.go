package auth

import (
	"context"
	"errors"
	"time"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"

	"github.com/google/uuid"
)

// CreateSession issues a fresh opaque token with an absolute expiry of
// now + TTL. Expiry is fixed at creation; nothing renews it.
func (r *Resolver) CreateSession(ctx context.Context, userID string) (models.Session, error) {
	now := time.Now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}
	if err := r.sessions.InsertSession(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// ValidateSession resolves a token to its session record. An unknown token
// is ErrSessionInvalid. A token at or past its expiry is deleted on the
// spot and reported as ErrSessionExpired; no expired state is ever kept.
func (r *Resolver) ValidateSession(ctx context.Context, token string) (models.Session, error) {
	session, err := r.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrSessionInvalid
		}
		return models.Session{}, err
	}
	if !session.ExpiresAt.After(time.Now().UTC()) {
		if err := r.sessions.DeleteSession(ctx, token); err != nil {
			return models.Session{}, err
		}
		return models.Session{}, ErrSessionExpired
	}
	return session, nil
}

// DestroySession deletes the session row. Deleting an absent token is not
// an error.
func (r *Resolver) DestroySession(ctx context.Context, token string) error {
	return r.sessions.DeleteSession(ctx, token)
}
