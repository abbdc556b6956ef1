package auth

import (
	"context"
	"errors"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// VerifyCredentials looks up the user by email and checks the password
// against the stored bcrypt hash. An unknown email and a wrong password
// both come back as ErrInvalidCredentials so callers cannot enumerate
// accounts. No side effects.
func (r *Resolver) VerifyCredentials(ctx context.Context, email, password string) (models.User, error) {
	user, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
