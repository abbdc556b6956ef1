package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartdvm/auth-service/internal/models"
)

func TestCreateSessionAbsoluteExpiry(t *testing.T) {
	sessions := newMemSessions()
	ttl := 7 * 24 * time.Hour
	r := NewResolver(fakeUsers{}, sessions, ttl)

	before := time.Now().UTC()
	session, err := r.CreateSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	after := time.Now().UTC()

	if session.ID == "" {
		t.Fatal("expected a token")
	}
	if session.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", session.UserID)
	}
	if session.ExpiresAt.Before(before.Add(ttl)) || session.ExpiresAt.After(after.Add(ttl)) {
		t.Fatalf("expiry %v not at now+TTL", session.ExpiresAt)
	}
	if _, ok := sessions.sessions[session.ID]; !ok {
		t.Fatal("session not stored")
	}
}

func TestCreateSessionTokensUnique(t *testing.T) {
	sessions := newMemSessions()
	r := NewResolver(fakeUsers{}, sessions, time.Hour)

	first, err := r.CreateSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := r.CreateSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("tokens must be unique")
	}
}

func TestValidateSessionUnknownToken(t *testing.T) {
	r := NewResolver(fakeUsers{}, newMemSessions(), time.Hour)

	_, err := r.ValidateSession(context.Background(), "missing")
	if !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestValidateSessionExpiredDeletesRow(t *testing.T) {
	sessions := newMemSessions()
	sessions.sessions["tok-1"] = models.Session{
		ID:        "tok-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().UTC().Add(-time.Second),
	}
	r := NewResolver(fakeUsers{}, sessions, time.Hour)

	_, err := r.ValidateSession(context.Background(), "tok-1")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, ok := sessions.sessions["tok-1"]; ok {
		t.Fatal("expired session row not deleted")
	}

	_, err = r.ValidateSession(context.Background(), "tok-1")
	if !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("second validate: expected ErrSessionInvalid, got %v", err)
	}
}

func TestValidateSessionActive(t *testing.T) {
	sessions := newMemSessions()
	want := models.Session{
		ID:        "tok-2",
		UserID:    "user-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	sessions.sessions[want.ID] = want
	r := NewResolver(fakeUsers{}, sessions, time.Hour)

	got, err := r.ValidateSession(context.Background(), "tok-2")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.UserID != want.UserID || !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDestroySessionIdempotent(t *testing.T) {
	sessions := newMemSessions()
	sessions.sessions["tok-3"] = models.Session{ID: "tok-3", UserID: "user-1", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	r := NewResolver(fakeUsers{}, sessions, time.Hour)

	if err := r.DestroySession(context.Background(), "tok-3"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := r.DestroySession(context.Background(), "tok-3"); err != nil {
		t.Fatalf("repeat destroy: %v", err)
	}
}
