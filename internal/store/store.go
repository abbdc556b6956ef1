package store

import (
	"context"

	"smartdvm/auth-service/internal/models"
)

// UserStore holds user records and the administrator-practice membership
// relation.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	AccessiblePractices(ctx context.Context, administratorID string) ([]string, error)
	SetCurrentPractice(ctx context.Context, userID, practiceID string) error
}

// SessionStore holds session records keyed by their opaque token. The
// backend (Postgres or Redis) is chosen once at startup; callers only see
// this interface.
type SessionStore interface {
	InsertSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
