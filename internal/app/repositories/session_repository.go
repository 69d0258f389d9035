package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// SessionRepository tracks issued session tokens so logout can invalidate
// them server-side.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a newly issued session token
func (r *SessionRepository) Create(ctx context.Context, tokenID, userID string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (token_id, user_id, expires_at)
		VALUES ($1, $2, $3)`,
		tokenID, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("error creating session record: %w", err)
	}
	return nil
}

// Revoke marks a session token as revoked
func (r *SessionRepository) Revoke(ctx context.Context, tokenID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sessions SET revoked = TRUE WHERE token_id = $1`,
		tokenID)
	if err != nil {
		return fmt.Errorf("error revoking session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenInvalid
	}
	return nil
}

// Validate checks that a session token is known, unexpired and not revoked
func (r *SessionRepository) Validate(ctx context.Context, tokenID string) error {
	var revoked bool
	var expiresAt time.Time
	err := r.db.QueryRow(ctx, `
		SELECT revoked, expires_at FROM sessions WHERE token_id = $1`,
		tokenID).Scan(&revoked, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error validating session: %w", err)
	}
	if revoked {
		return apperrors.ErrTokenRevoked
	}
	if expiresAt.Before(time.Now()) {
		return apperrors.ErrTokenExpired
	}
	return nil
}
