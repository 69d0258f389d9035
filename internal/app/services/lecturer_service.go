package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
)

// defaultDepartment is assigned to system-created lecturer profiles until an
// admin reassigns them.
const defaultDepartment = "General"

// LecturerStore is the persistence surface the lecturer service needs.
type LecturerStore interface {
	Insert(ctx context.Context, q scope.Querier, lecturer *models.LecturerProfile) error
	List(ctx context.Context) ([]*models.LecturerProfile, error)
	Delete(ctx context.Context, q scope.Querier, lecturerID string) (string, error)
}

// UserDeleter removes the principal when its profile is deleted.
type UserDeleter interface {
	DeleteUser(ctx context.Context, q scope.Querier, id string) error
}

// LecturerService manages lecturer profiles.
type LecturerService struct {
	store  LecturerStore
	users  UserDeleter
	authz  *auth.AuthorizationService
	audit  *AuditService
	runner scope.Runner
	logger zerolog.Logger
}

// NewLecturerService creates a new LecturerService
func NewLecturerService(
	store LecturerStore,
	users UserDeleter,
	authz *auth.AuthorizationService,
	audit *AuditService,
	runner scope.Runner,
	logger zerolog.Logger,
) *LecturerService {
	return &LecturerService{
		store:  store,
		users:  users,
		authz:  authz,
		audit:  audit,
		runner: runner,
		logger: logger,
	}
}

// DeriveStaffNo builds the staff number from the user ID suffix. The
// derivation is deterministic so re-running profile creation for the same
// user cannot produce a different number.
func DeriveStaffNo(userID string) string {
	suffix := userID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "STAFF-" + suffix
}

// CreateProfile creates a lecturer profile inside the caller's transaction.
// Called by the registration flow; safe to call again for the same user.
func (s *LecturerService) CreateProfile(ctx context.Context, q scope.Querier, userID string) error {
	lecturer := &models.LecturerProfile{
		LecturerID: uuid.New().String(),
		UserID:     userID,
		StaffNo:    DeriveStaffNo(userID),
		Department: defaultDepartment,
	}
	return s.store.Insert(ctx, q, lecturer)
}

// CreateLecturerProfile creates a lecturer profile as a standalone admin
// operation, for principals registered before the profile invariant existed.
func (s *LecturerService) CreateLecturerProfile(ctx context.Context, sess *scope.Session, userID string) error {
	if err := s.authz.RequireAdmin(sess); err != nil {
		return err
	}
	return s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		return s.CreateProfile(ctx, q, userID)
	})
}

// GetLecturers returns all lecturer profiles
func (s *LecturerService) GetLecturers(ctx context.Context) ([]*models.LecturerProfile, error) {
	return s.store.List(ctx)
}

// DeleteLecturer removes a lecturer profile and its principal. Admin only;
// the deletion and its audit entry commit or roll back together.
func (s *LecturerService) DeleteLecturer(ctx context.Context, sess *scope.Session, lecturerID string) error {
	if err := s.authz.RequireAdmin(sess); err != nil {
		s.audit.RecordDenied(ctx, sess, models.ActionDeleteLecturer, lecturerID)
		return err
	}

	return s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		userID, err := s.store.Delete(ctx, q, lecturerID)
		if err != nil {
			return err
		}
		if err := s.users.DeleteUser(ctx, q, userID); err != nil {
			return fmt.Errorf("failed to delete lecturer principal: %w", err)
		}
		return s.audit.Record(ctx, q, sess, models.ActionDeleteLecturer, lecturerID, models.AuditSuccess)
	})
}
