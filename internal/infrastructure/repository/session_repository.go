package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"fileshare/internal/domain/account"
	"fileshare/internal/domain/apperr"
	domain "fileshare/internal/domain/auth"
	"fileshare/internal/infrastructure/database"
)

type sessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token, username, role, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.Token, session.Username, string(session.Role),
		session.ExpiresAt.UTC(), session.CreatedAt.UTC(),
	)
	if err != nil {
		return apperr.IO("create session", err)
	}
	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	session := &domain.Session{}
	var role string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, token, username, role, expires_at, created_at
		 FROM sessions WHERE token = ?`, token,
	).Scan(&session.ID, &session.Token, &session.Username, &role, &session.ExpiresAt, &session.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperr.IO("load session", err)
	}
	session.Role = account.Role(role)
	session.LoggedIn = true
	return session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return apperr.IO("delete session", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE username = ?`, username)
	if err != nil {
		return 0, apperr.IO("revoke sessions", err)
	}
	return result.RowsAffected()
}

// DeleteExpired removes every session whose expiry is before now.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, apperr.IO("purge sessions", err)
	}
	return result.RowsAffected()
}
