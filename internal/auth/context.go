package auth

import (
	"context"
	"errors"
	"sort"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"
)

// BuildContext assembles the authorization context for a validated session.
// A session whose user no longer exists is reported as ErrOrphanedSession;
// the caller is expected to destroy it.
func (r *Resolver) BuildContext(ctx context.Context, session models.Session) (models.AuthorizationContext, error) {
	user, err := r.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.AuthorizationContext{}, ErrOrphanedSession
		}
		return models.AuthorizationContext{}, err
	}
	return r.ContextForUser(ctx, user)
}

// ContextForUser builds the role-scoped context straight from a user
// record. CLIENT and PRACTICE_ADMINISTRATOR require a practice
// association; ADMINISTRATOR resolves the current practice against the
// accessible set. The resolution is read-only: a defaulted current
// practice is never written back, only an explicit switch persists one.
func (r *Resolver) ContextForUser(ctx context.Context, user models.User) (models.AuthorizationContext, error) {
	authCtx := models.AuthorizationContext{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	switch user.Role {
	case models.RoleClient, models.RolePracticeAdministrator:
		if user.PracticeID == nil || *user.PracticeID == "" {
			return models.AuthorizationContext{}, ErrIncompleteProfile
		}
		authCtx.PracticeID = *user.PracticeID
	case models.RoleAdministrator:
		accessible, err := r.users.AccessiblePractices(ctx, user.ID)
		if err != nil {
			return models.AuthorizationContext{}, err
		}
		sort.Strings(accessible)
		authCtx.AccessiblePracticeIDs = accessible
		authCtx.CurrentPracticeID = resolveCurrentPractice(accessible, user.CurrentPracticeID)
	default:
		return models.AuthorizationContext{}, ErrUnknownRole
	}

	return authCtx, nil
}

// resolveCurrentPractice applies the selection invariant: empty set means
// the sentinel, a stored value outside the set falls back to the smallest
// member, a stored member is used unchanged. accessible must be sorted.
func resolveCurrentPractice(accessible []string, stored *string) string {
	if len(accessible) == 0 {
		return models.PracticeNone
	}
	if stored != nil {
		for _, id := range accessible {
			if id == *stored {
				return *stored
			}
		}
	}
	return accessible[0]
}
