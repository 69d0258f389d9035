package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAuth "github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	byID map[string]*models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{byID: make(map[string]*models.Course)}
}

func (s *fakeCourseStore) Insert(ctx context.Context, q scope.Querier, course *models.Course) error {
	for _, c := range s.byID {
		if c.CourseCode == course.CourseCode {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	s.byID[course.CourseID] = course
	return nil
}

func (s *fakeCourseStore) Delete(ctx context.Context, q scope.Querier, courseID string) error {
	if _, ok := s.byID[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.byID, courseID)
	return nil
}

func (s *fakeCourseStore) List(ctx context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCourseStore) ListByLecturerUser(ctx context.Context, userID string) ([]*models.Course, error) {
	return nil, nil
}

func (s *fakeCourseStore) ListByStudentUser(ctx context.Context, q scope.Querier, userID string) ([]*models.Course, error) {
	return nil, nil
}

func newCourseServiceForTest(store *fakeCourseStore, audit *fakeAuditStore) *CourseService {
	authz := appAuth.NewAuthorizationService(&fakeOwnership{})
	auditSvc := NewAuditService(audit, zerolog.Nop())
	return NewCourseService(store, authz, auditSvc, &fakeRunner{}, zerolog.Nop())
}

func TestAddCourse(t *testing.T) {
	store := newFakeCourseStore()
	audit := &fakeAuditStore{}
	svc := newCourseServiceForTest(store, audit)

	course, err := svc.AddCourse(context.Background(), adminSession(), "CS101", "Introduction to Computing", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, course.CourseID)
	assert.Len(t, store.byID, 1)

	require.Len(t, audit.appended, 1)
	assert.Equal(t, models.ActionCreateCourse, audit.appended[0].Action)
	assert.Equal(t, "CS101", audit.appended[0].TargetEntity)
	assert.Equal(t, models.AuditSuccess, audit.appended[0].Status)
}

func TestAddCourseDeniedForNonAdmin(t *testing.T) {
	store := newFakeCourseStore()
	audit := &fakeAuditStore{}
	svc := newCourseServiceForTest(store, audit)

	_, err := svc.AddCourse(context.Background(), lecturerSession("lect-1"), "CS101", "Introduction to Computing", nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.Empty(t, store.byID)
	require.Len(t, audit.standalone, 1)
	assert.Equal(t, models.AuditFailure, audit.standalone[0].Status)
}

func TestAddCourseRequiresCodeAndName(t *testing.T) {
	svc := newCourseServiceForTest(newFakeCourseStore(), &fakeAuditStore{})

	_, err := svc.AddCourse(context.Background(), adminSession(), " ", "Introduction to Computing", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AddCourse(context.Background(), adminSession(), "CS101", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteCourse(t *testing.T) {
	store := newFakeCourseStore()
	audit := &fakeAuditStore{}
	svc := newCourseServiceForTest(store, audit)

	course, err := svc.AddCourse(context.Background(), adminSession(), "CS101", "Introduction to Computing", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(context.Background(), adminSession(), course.CourseID))
	assert.Empty(t, store.byID)

	require.Len(t, audit.appended, 2)
	assert.Equal(t, models.ActionDeleteCourse, audit.appended[1].Action)
}

func TestDeleteCourseUnknown(t *testing.T) {
	svc := newCourseServiceForTest(newFakeCourseStore(), &fakeAuditStore{})

	err := svc.DeleteCourse(context.Background(), adminSession(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestGetOwnCoursesRequiresLecturer(t *testing.T) {
	svc := newCourseServiceForTest(newFakeCourseStore(), &fakeAuditStore{})

	_, err := svc.GetOwnCourses(context.Background(), studentSession("user-1"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetEnrolledCoursesRequiresStudent(t *testing.T) {
	svc := newCourseServiceForTest(newFakeCourseStore(), &fakeAuditStore{})

	_, err := svc.GetEnrolledCourses(context.Background(), lecturerSession("lect-1"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
