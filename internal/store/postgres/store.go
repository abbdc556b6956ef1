package postgres

import (
	"context"
	"errors"

	"smartdvm/auth-service/internal/models"
	"smartdvm/auth-service/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, email, name, password_hash, role, practice_id, current_practice_id
		FROM users
		WHERE lower(email) = lower($1)
	`, email)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, email, name, password_hash, role, practice_id, current_practice_id
		FROM users
		WHERE user_id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.PracticeID, &user.CurrentPracticeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) AccessiblePractices(ctx context.Context, administratorID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT practice_id
		FROM administrator_accessible_practices
		WHERE administrator_id = $1
	`, administratorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var practices []string
	for rows.Next() {
		var practiceID string
		if err := rows.Scan(&practiceID); err != nil {
			return nil, err
		}
		practices = append(practices, practiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return practices, nil
}

func (s *Store) SetCurrentPractice(ctx context.Context, userID, practiceID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users
		SET current_practice_id = $2
		WHERE user_id = $1
	`, userID, practiceID)
	return err
}

func (s *Store) InsertSession(ctx context.Context, session models.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.UserID, session.ExpiresAt, session.CreatedAt)
	return err
}

func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var session models.Session
	row := s.pool.QueryRow(ctx, `
		SELECT session_id, user_id, expires_at, created_at
		FROM sessions
		WHERE session_id = $1
	`, token)
	if err := row.Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, store.ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM sessions
		WHERE session_id = $1
	`, token)
	return err
}
