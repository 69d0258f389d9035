package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// EnrollmentStore is the persistence surface the enrollment service needs.
type EnrollmentStore interface {
	Insert(ctx context.Context, q scope.Querier, studentID, courseID string) (bool, error)
	GetByID(ctx context.Context, q scope.Querier, enrollmentID string) (*models.Enrollment, error)
	UpsertGrade(ctx context.Context, q scope.Querier, enrollmentID, value string) error
	UpdateGrade(ctx context.Context, q scope.Querier, studentID, courseID, value string) error
	GradeSheetForLecturer(ctx context.Context, userID string) ([]*models.GradeSheetRow, error)
}

// EnrollmentService is the ownership-checked mutator: every write first
// proves the acting lecturer owns the target course, inside the same
// transaction as the write itself.
type EnrollmentService struct {
	store  EnrollmentStore
	authz  *auth.AuthorizationService
	audit  *AuditService
	runner scope.Runner
	logger zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	store EnrollmentStore,
	authz *auth.AuthorizationService,
	audit *AuditService,
	runner scope.Runner,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		store:  store,
		authz:  authz,
		audit:  audit,
		runner: runner,
		logger: logger,
	}
}

// EnrollStudent enrolls a student in a course the session's lecturer owns.
// A failed ownership check aborts before any write and leaves a
// Status=Failure entry in the audit trail. Enrolling an already-enrolled
// pair is a silent idempotent success; the unique constraint on
// (student_id, course_id) guarantees at most one row even under concurrent
// calls.
func (s *EnrollmentService) EnrollStudent(ctx context.Context, sess *scope.Session, courseID, studentID string) error {
	target := fmt.Sprintf("%s/%s", courseID, studentID)

	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		if err := s.authz.ValidateCourseOwnership(ctx, q, sess, courseID); err != nil {
			return err
		}

		inserted, err := s.store.Insert(ctx, q, studentID, courseID)
		if err != nil {
			return err
		}
		if !inserted {
			// Repeat enrollment of the same pair is a no-op; it leaves no
			// second audit entry.
			s.logger.Debug().Str("courseID", courseID).Str("studentID", studentID).Msg("Student already enrolled")
			return nil
		}

		return s.audit.Record(ctx, q, sess, models.ActionEnrollStudent, target, models.AuditSuccess)
	})

	if errors.Is(err, apperrors.ErrPermissionDenied) {
		s.audit.RecordDenied(ctx, sess, models.ActionEnrollStudent, target)
	}
	return err
}

// UpsertGrade records a grade for an enrollment, inserting on first write
// and overwriting afterwards. The ownership check covers the course the
// enrollment belongs to.
func (s *EnrollmentService) UpsertGrade(ctx context.Context, sess *scope.Session, enrollmentID, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: grade value is required", apperrors.ErrValidationFailed)
	}

	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		enrollment, err := s.store.GetByID(ctx, q, enrollmentID)
		if err != nil {
			return err
		}

		if err := s.authz.ValidateCourseOwnership(ctx, q, sess, enrollment.CourseID); err != nil {
			return err
		}

		if err := s.store.UpsertGrade(ctx, q, enrollmentID, value); err != nil {
			return err
		}

		return s.audit.Record(ctx, q, sess, models.ActionUpsertGrade, enrollmentID, models.AuditSuccess)
	})

	if errors.Is(err, apperrors.ErrPermissionDenied) {
		s.audit.RecordDenied(ctx, sess, models.ActionUpsertGrade, enrollmentID)
	}
	return err
}

// UpdateGrade overwrites an existing grade addressed by (student, course).
// It never creates a grade; a missing row is reported as ErrGradeNotFound.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, sess *scope.Session, studentID, courseID, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: grade value is required", apperrors.ErrValidationFailed)
	}

	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		if err := s.authz.ValidateCourseOwnership(ctx, q, sess, courseID); err != nil {
			return err
		}

		if err := s.store.UpdateGrade(ctx, q, studentID, courseID, value); err != nil {
			return err
		}

		return s.audit.Record(ctx, q, sess, models.ActionUpsertGrade, studentID+"/"+courseID, models.AuditSuccess)
	})

	if errors.Is(err, apperrors.ErrPermissionDenied) {
		s.audit.RecordDenied(ctx, sess, models.ActionUpsertGrade, studentID+"/"+courseID)
	}
	return err
}

// GetGradeSheet returns the lecturer's enrollments joined with grades.
func (s *EnrollmentService) GetGradeSheet(ctx context.Context, sess *scope.Session) ([]*models.GradeSheetRow, error) {
	if err := s.authz.RequireRole(sess, models.RoleLecturer); err != nil {
		return nil, err
	}
	return s.store.GradeSheetForLecturer(ctx, sess.UserID)
}
