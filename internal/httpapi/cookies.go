package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"smartdvm/auth-service/internal/models"
)

// The display cookie carries client-readable UI state only. It is never
// read back for authorization decisions; the session cookie is the sole
// credential.
type displayState struct {
	Name              string `json:"name"`
	Role              string `json:"role"`
	PracticeID        string `json:"practiceId,omitempty"`
	CurrentPracticeID string `json:"currentPracticeId,omitempty"`
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.options.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.options.SessionTTLSeconds,
		HttpOnly: true,
		Secure:   h.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setDisplayCookie(w http.ResponseWriter, authCtx models.AuthorizationContext) {
	payload, err := json.Marshal(displayState{
		Name:              authCtx.Name,
		Role:              authCtx.Role,
		PracticeID:        authCtx.PracticeID,
		CurrentPracticeID: authCtx.CurrentPracticeID,
	})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.options.DisplayCookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		MaxAge:   h.options.SessionTTLSeconds,
		Secure:   h.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.options.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     h.options.DisplayCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
