package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrSessionExpired     = errors.New("session expired")
	ErrOrphanedSession    = errors.New("orphaned session")
	ErrIncompleteProfile  = errors.New("incomplete profile")
	ErrAccessDenied       = errors.New("access denied")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnknownRole        = errors.New("unknown role")
)

// IsSessionFailure reports whether err is one of the session-validity
// failures the resolver self-heals: the session is destroyed and the caller
// clears the transport credential, never surfacing an error to the end user.
func IsSessionFailure(err error) bool {
	return errors.Is(err, ErrSessionInvalid) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrOrphanedSession) ||
		errors.Is(err, ErrIncompleteProfile) ||
		errors.Is(err, ErrUnknownRole)
}
