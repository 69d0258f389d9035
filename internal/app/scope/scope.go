package scope

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// Session is the explicit session context established after authentication
// and passed into every core call. It is a plain value, never read from
// ambient or global state.
type Session struct {
	UserID  string
	Role    models.Role
	TokenID string
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so repository methods work inside and
// outside a scoped transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Runner executes a function under a bound session scope, or as the system
// principal for operations that precede any session (registration).
type Runner interface {
	WithScope(ctx context.Context, sess *Session, fn func(q Querier) error) error
	WithSystem(ctx context.Context, fn func(q Querier) error) error
}

// Enforcer binds the active (UserID, Role) into a transaction-local store
// context so per-row visibility policies apply to every query executed
// within. The binding uses set_config(..., is_local => true) and therefore
// dies with the transaction: a pooled connection can never carry a stale
// scope into a later operation.
type Enforcer struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewEnforcer creates a new Enforcer.
func NewEnforcer(db *pgxpool.Pool, logger zerolog.Logger) *Enforcer {
	return &Enforcer{db: db, logger: logger}
}

// WithScope runs fn inside a single transaction with the session bound into
// the store context. A missing or incomplete session fails closed. The
// transaction commits only if fn returns nil; any error rolls the whole
// operation back, so multi-step mutations have no partial effects.
func (e *Enforcer) WithScope(ctx context.Context, sess *Session, fn func(q Querier) error) error {
	if sess == nil || sess.UserID == "" || !sess.Role.Valid() {
		return apperrors.ErrPermissionDenied
	}

	tx, err := e.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Re-established per logical operation, never cached across pooled
	// connection reuse.
	_, err = tx.Exec(ctx,
		`SELECT set_config('app.user_id', $1, true), set_config('app.role', $2, true)`,
		sess.UserID, string(sess.Role))
	if err != nil {
		return fmt.Errorf("failed to bind session scope: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit scoped transaction: %w", err)
	}
	return nil
}

// WithSystem runs fn inside a single transaction with no principal bound.
// Row-level policies treat the unbound state as the system actor; only
// operations that exist before a session (registration, seeding) may use it.
func (e *Enforcer) WithSystem(ctx context.Context, fn func(q Querier) error) error {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
