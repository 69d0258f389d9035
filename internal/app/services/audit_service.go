package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// AuditStore is the persistence surface the audit service needs.
type AuditStore interface {
	Append(ctx context.Context, q scope.Querier, entry *models.AuditLogEntry) error
	AppendStandalone(ctx context.Context, entry *models.AuditLogEntry) error
	List(ctx context.Context) ([]*models.AuditLogEntry, error)
}

// AuditService builds and appends audit trail entries for privileged
// actions.
type AuditService struct {
	store  AuditStore
	logger zerolog.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(store AuditStore, logger zerolog.Logger) *AuditService {
	return &AuditService{store: store, logger: logger}
}

// Record appends a success entry inside the transaction of the privileged
// action. If the append fails the caller's transaction fails with it, so a
// success is never reported without its audit entry.
func (s *AuditService) Record(ctx context.Context, q scope.Querier, sess *scope.Session, action models.AuditAction, target string, status models.AuditStatus) error {
	if sess == nil {
		return apperrors.ErrSessionRequired
	}
	entry := &models.AuditLogEntry{
		LogID:        uuid.New().String(),
		ActorRole:    sess.Role,
		ActorUserID:  sess.UserID,
		Action:       action,
		TargetEntity: target,
		Status:       status,
	}
	if err := s.store.Append(ctx, q, entry); err != nil {
		return fmt.Errorf("audit append failed: %w", err)
	}
	return nil
}

// RecordStandalone appends an entry outside any caller transaction. Login
// and logout have no scoped transaction to piggyback on, so their entries go
// through here; a failed append still fails the action.
func (s *AuditService) RecordStandalone(ctx context.Context, sess *scope.Session, action models.AuditAction, target string, status models.AuditStatus) error {
	if sess == nil {
		return apperrors.ErrSessionRequired
	}
	entry := &models.AuditLogEntry{
		LogID:        uuid.New().String(),
		ActorRole:    sess.Role,
		ActorUserID:  sess.UserID,
		Action:       action,
		TargetEntity: target,
		Status:       status,
	}
	if err := s.store.AppendStandalone(ctx, entry); err != nil {
		return fmt.Errorf("audit append failed: %w", err)
	}
	return nil
}

// RecordDenied appends a Status=Failure entry for an attempted-but-denied
// privileged action. It runs outside the rolled-back transaction; a failure
// to record is logged but does not mask the original denial.
func (s *AuditService) RecordDenied(ctx context.Context, sess *scope.Session, action models.AuditAction, target string) {
	if sess == nil {
		return
	}
	if err := s.RecordStandalone(ctx, sess, action, target, models.AuditFailure); err != nil {
		s.logger.Error().Err(err).
			Str("action", string(action)).
			Str("actor", sess.UserID).
			Msg("Failed to record denied action in audit trail")
	}
}

// List returns the audit trail, most recent entries first. Admin only. The
// descending order is this service's contract, enforced here rather than
// trusted to the store.
func (s *AuditService) List(ctx context.Context, sess *scope.Session) ([]*models.AuditLogEntry, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
