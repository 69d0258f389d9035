package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
)

// AuditRepository appends and reads the immutable audit trail. There is
// deliberately no update or delete method on this type.
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append inserts an audit entry through the given Querier. When called with
// the transaction of the privileged action itself, a failed append rolls the
// whole action back: no audit entry, no declared success.
func (r *AuditRepository) Append(ctx context.Context, q scope.Querier, entry *models.AuditLogEntry) error {
	if _, err := models.ParseAuditAction(string(entry.Action)); err != nil {
		return fmt.Errorf("refusing audit append: %w", err)
	}
	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (log_id, actor_role, actor_user_id, action, target_entity, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.LogID, entry.ActorRole, entry.ActorUserID, entry.Action, entry.TargetEntity, entry.Status)
	if err != nil {
		return fmt.Errorf("error appending audit entry: %w", err)
	}
	return nil
}

// AppendStandalone inserts an audit entry outside any caller transaction.
// Used to record denied attempts after the failing operation has already
// been rolled back.
func (r *AuditRepository) AppendStandalone(ctx context.Context, entry *models.AuditLogEntry) error {
	return r.Append(ctx, r.db, entry)
}

// List returns the full trail, most recent first. Timestamp descending is
// the canonical read order.
func (r *AuditRepository) List(ctx context.Context) ([]*models.AuditLogEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT log_id, occurred_at, actor_role, actor_user_id, action, target_entity, status
		FROM audit_logs
		ORDER BY occurred_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		if err := rows.Scan(&entry.LogID, &entry.Timestamp, &entry.ActorRole,
			&entry.ActorUserID, &entry.Action, &entry.TargetEntity, &entry.Status); err != nil {
			return nil, fmt.Errorf("error scanning audit row: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}

	return entries, nil
}
