package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"smartdvm/auth-service/internal/auth"
	"smartdvm/auth-service/internal/models"
)

// AuthService is the resolver surface the transport binds to. Satisfied by
// *auth.Resolver.
type AuthService interface {
	VerifyCredentials(ctx context.Context, email, password string) (models.User, error)
	CreateSession(ctx context.Context, userID string) (models.Session, error)
	DestroySession(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (models.AuthorizationContext, error)
	ContextForUser(ctx context.Context, user models.User) (models.AuthorizationContext, error)
	SwitchPractice(ctx context.Context, administratorID, practiceID string) (auth.SwitchResult, error)
}

type Options struct {
	SessionCookieName string
	DisplayCookieName string
	SessionTTLSeconds int
	SecureCookies     bool
}

type Handler struct {
	auth    AuthService
	options Options
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User    models.AuthorizationContext `json:"user"`
	Message string                      `json:"message"`
}

type switchRequest struct {
	PracticeID string `json:"practiceId"`
}

type switchResponse struct {
	Success     bool                         `json:"success"`
	UpdatedUser *models.AuthorizationContext `json:"updatedUser,omitempty"`
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(auth AuthService, options Options) *Handler {
	if options.SessionCookieName == "" {
		options.SessionCookieName = "sdvm_session"
	}
	if options.DisplayCookieName == "" {
		options.DisplayCookieName = "sdvm_user"
	}
	return &Handler{auth: auth, options: options}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/logout", h.handleLogout)
	mux.HandleFunc("/api/user", h.handleCurrentUser)
	mux.HandleFunc("/api/practices/switch", h.handleSwitchPractice)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	var problems []string
	if req.Email == "" {
		problems = append(problems, "email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		problems = append(problems, "email must be a valid email address")
	}
	if req.Password == "" {
		problems = append(problems, "password is required")
	}
	if len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "validation_error", strings.Join(problems, "; "))
		return
	}

	user, err := h.auth.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	authCtx, err := h.auth.ContextForUser(r.Context(), user)
	if err != nil {
		// A verified account in an invalid operating state cannot be
		// logged in.
		if errors.Is(err, auth.ErrIncompleteProfile) {
			writeError(w, http.StatusInternalServerError, "internal_error", "account is not associated with a practice")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	session, err := h.auth.CreateSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	h.setSessionCookie(w, session.ID)
	h.setDisplayCookie(w, authCtx)
	writeJSON(w, http.StatusOK, loginResponse{User: authCtx, Message: "Login successful"})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(h.options.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.DestroySession(r.Context(), cookie.Value); err != nil {
			h.clearAuthCookies(w)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
	}
	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// handleCurrentUser resolves the session cookie into the caller's
// authorization context. Every session-validity failure is converted into
// a 200 with a JSON null body and a cleared cookie; only a store failure
// surfaces as a 500, and even then the cookie is cleared.
func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(h.options.SessionCookieName)
	if err != nil || cookie.Value == "" {
		h.clearAuthCookies(w)
		writeJSON(w, http.StatusOK, nil)
		return
	}

	authCtx, err := h.auth.Resolve(r.Context(), cookie.Value)
	if err != nil {
		h.clearAuthCookies(w)
		if auth.IsSessionFailure(err) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authCtx)
}

// handleSwitchPractice is a privileged operation: the administrator id is
// always the authenticated caller's own, never taken from the request.
func (h *Handler) handleSwitchPractice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(h.options.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}
	authCtx, err := h.auth.Resolve(r.Context(), cookie.Value)
	if err != nil {
		if auth.IsSessionFailure(err) {
			h.clearAuthCookies(w)
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid session")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	var req switchRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	req.PracticeID = strings.TrimSpace(req.PracticeID)
	if req.PracticeID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "practiceId is required")
		return
	}

	result, err := h.auth.SwitchPractice(r.Context(), authCtx.ID, req.PracticeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusOK, switchResponse{Success: false})
		return
	}

	h.setDisplayCookie(w, *result.UpdatedUser)
	writeJSON(w, http.StatusOK, switchResponse{Success: true, UpdatedUser: result.UpdatedUser})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: responseError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
