package auth

import (
	"context"
	"time"
)

// SessionRepository defines the session storage interface
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUsername(ctx context.Context, username string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
