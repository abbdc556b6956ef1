package auth

import (
	"context"
	"time"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"
)

// Resolver turns an opaque session token into a role-scoped authorization
// context. It owns credential verification, session lifecycle, context
// building, and the administrator practice switch. All state lives in the
// injected stores; the resolver itself carries none.
type Resolver struct {
	users    store.UserStore
	sessions store.SessionStore
	ttl      time.Duration
}

func NewResolver(users store.UserStore, sessions store.SessionStore, ttl time.Duration) *Resolver {
	return &Resolver{users: users, sessions: sessions, ttl: ttl}
}

// Resolve is the subsequent-request path: validate the token, rebuild the
// context. A session that references a deleted user, an incomplete profile,
// or an unknown role is destroyed before the failure is returned.
func (r *Resolver) Resolve(ctx context.Context, token string) (models.AuthorizationContext, error) {
	session, err := r.ValidateSession(ctx, token)
	if err != nil {
		return models.AuthorizationContext{}, err
	}
	authCtx, err := r.BuildContext(ctx, session)
	if err != nil {
		if IsSessionFailure(err) {
			if delErr := r.DestroySession(ctx, token); delErr != nil {
				return models.AuthorizationContext{}, delErr
			}
		}
		return models.AuthorizationContext{}, err
	}
	return authCtx, nil
}
