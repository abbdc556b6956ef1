package auth

import (
	"context"
	"errors"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"
)

// SwitchResult is the structured outcome of a practice switch. Denials are
// carried as a value, not an error, so callers can branch without
// exception-style handling; the error return of SwitchPractice is reserved
// for store failures.
type SwitchResult struct {
	Success     bool
	UpdatedUser *models.AuthorizationContext
	Denial      error
}

// SwitchPractice moves an administrator's current practice selection.
// Non-administrators get ErrPermissionDenied, targets outside the
// accessible set get ErrAccessDenied. On success the new selection is
// persisted with a single blind write (last write wins) and a freshly
// built context is returned. Repeating the call with the same target is
// idempotent.
func (r *Resolver) SwitchPractice(ctx context.Context, administratorID, practiceID string) (SwitchResult, error) {
	user, err := r.users.GetUserByID(ctx, administratorID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return SwitchResult{Denial: ErrPermissionDenied}, nil
		}
		return SwitchResult{}, err
	}
	if user.Role != models.RoleAdministrator {
		return SwitchResult{Denial: ErrPermissionDenied}, nil
	}

	accessible, err := r.users.AccessiblePractices(ctx, administratorID)
	if err != nil {
		return SwitchResult{}, err
	}
	member := false
	for _, id := range accessible {
		if id == practiceID {
			member = true
			break
		}
	}
	if !member {
		return SwitchResult{Denial: ErrAccessDenied}, nil
	}

	if err := r.users.SetCurrentPractice(ctx, administratorID, practiceID); err != nil {
		return SwitchResult{}, err
	}

	user.CurrentPracticeID = &practiceID
	authCtx, err := r.ContextForUser(ctx, user)
	if err != nil {
		return SwitchResult{}, err
	}
	return SwitchResult{Success: true, UpdatedUser: &authCtx}, nil
}
