package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// CourseStore is the persistence surface the course service needs.
type CourseStore interface {
	Insert(ctx context.Context, q scope.Querier, course *models.Course) error
	Delete(ctx context.Context, q scope.Querier, courseID string) error
	List(ctx context.Context) ([]*models.Course, error)
	ListByLecturerUser(ctx context.Context, userID string) ([]*models.Course, error)
	ListByStudentUser(ctx context.Context, q scope.Querier, userID string) ([]*models.Course, error)
}

// CourseService manages the course catalogue. Creation and deletion are
// Admin-only and audited.
type CourseService struct {
	store  CourseStore
	authz  *auth.AuthorizationService
	audit  *AuditService
	runner scope.Runner
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	store CourseStore,
	authz *auth.AuthorizationService,
	audit *AuditService,
	runner scope.Runner,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		store:  store,
		authz:  authz,
		audit:  audit,
		runner: runner,
		logger: logger,
	}
}

// AddCourse creates a new course. The audit entry is written in the same
// transaction as the insert.
func (s *CourseService) AddCourse(ctx context.Context, sess *scope.Session, courseCode, courseName string, lecturerID *string) (*models.Course, error) {
	if err := s.authz.RequireAdmin(sess); err != nil {
		s.audit.RecordDenied(ctx, sess, models.ActionCreateCourse, courseCode)
		return nil, err
	}
	if strings.TrimSpace(courseCode) == "" || strings.TrimSpace(courseName) == "" {
		return nil, fmt.Errorf("%w: course code and name are required", apperrors.ErrValidationFailed)
	}

	course := &models.Course{
		CourseID:   uuid.New().String(),
		CourseCode: courseCode,
		CourseName: courseName,
		LecturerID: lecturerID,
	}

	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		if err := s.store.Insert(ctx, q, course); err != nil {
			return err
		}
		return s.audit.Record(ctx, q, sess, models.ActionCreateCourse, course.CourseCode, models.AuditSuccess)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", course.CourseID).Str("code", course.CourseCode).Msg("Course created")
	return course, nil
}

// DeleteCourse removes a course. Admin only; audited in the same
// transaction.
func (s *CourseService) DeleteCourse(ctx context.Context, sess *scope.Session, courseID string) error {
	if err := s.authz.RequireAdmin(sess); err != nil {
		s.audit.RecordDenied(ctx, sess, models.ActionDeleteCourse, courseID)
		return err
	}

	return s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		if err := s.store.Delete(ctx, q, courseID); err != nil {
			return err
		}
		return s.audit.Record(ctx, q, sess, models.ActionDeleteCourse, courseID, models.AuditSuccess)
	})
}

// GetCourses returns the whole course catalogue
func (s *CourseService) GetCourses(ctx context.Context) ([]*models.Course, error) {
	return s.store.List(ctx)
}

// GetOwnCourses returns the courses owned by the session's lecturer profile
func (s *CourseService) GetOwnCourses(ctx context.Context, sess *scope.Session) ([]*models.Course, error) {
	if err := s.authz.RequireRole(sess, models.RoleLecturer); err != nil {
		return nil, err
	}
	return s.store.ListByLecturerUser(ctx, sess.UserID)
}

// GetEnrolledCourses returns the courses the session's student profile is
// enrolled in. The lookup crosses the student's own scoped row, so it runs
// under the session scope.
func (s *CourseService) GetEnrolledCourses(ctx context.Context, sess *scope.Session) ([]*models.Course, error) {
	if err := s.authz.RequireRole(sess, models.RoleStudent); err != nil {
		return nil, err
	}

	var courses []*models.Course
	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		var lerr error
		courses, lerr = s.store.ListByStudentUser(ctx, q, sess.UserID)
		return lerr
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}
