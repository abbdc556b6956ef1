package models

import "time"

const (
	RoleClient                = "CLIENT"
	RolePracticeAdministrator = "PRACTICE_ADMINISTRATOR"
	RoleAdministrator         = "ADMINISTRATOR"
)

// PracticeNone is the sentinel current practice for an administrator whose
// accessible practice set is empty.
const PracticeNone = "practice_NONE"

type User struct {
	ID                string
	Email             string
	Name              string
	PasswordHash      string
	Role              string
	PracticeID        *string
	CurrentPracticeID *string
}

type Practice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Session struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorizationContext is the role-scoped identity handed to the portal
// frontend. CLIENT and PRACTICE_ADMINISTRATOR carry PracticeID;
// ADMINISTRATOR carries the accessible set and the current selection.
type AuthorizationContext struct {
	ID                    string   `json:"id"`
	Email                 string   `json:"email"`
	Name                  string   `json:"name"`
	Role                  string   `json:"role"`
	PracticeID            string   `json:"practiceId,omitempty"`
	AccessiblePracticeIDs []string `json:"accessiblePracticeIds,omitempty"`
	CurrentPracticeID     string   `json:"currentPracticeId,omitempty"`
}
