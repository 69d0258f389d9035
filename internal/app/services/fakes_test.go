package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// fakeRunner mirrors the enforcer's fail-closed contract without a store:
// a missing or incomplete session never reaches fn.
type fakeRunner struct {
	scopeCalls int
}

func (r *fakeRunner) WithScope(ctx context.Context, sess *scope.Session, fn func(q scope.Querier) error) error {
	if sess == nil || sess.UserID == "" || !sess.Role.Valid() {
		return apperrors.ErrPermissionDenied
	}
	r.scopeCalls++
	return fn(nil)
}

func (r *fakeRunner) WithSystem(ctx context.Context, fn func(q scope.Querier) error) error {
	return fn(nil)
}

type fakeAuditStore struct {
	appended   []*models.AuditLogEntry
	standalone []*models.AuditLogEntry
	appendErr  error
}

func (s *fakeAuditStore) Append(ctx context.Context, q scope.Querier, entry *models.AuditLogEntry) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, entry)
	return nil
}

func (s *fakeAuditStore) AppendStandalone(ctx context.Context, entry *models.AuditLogEntry) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.standalone = append(s.standalone, entry)
	return nil
}

func (s *fakeAuditStore) List(ctx context.Context) ([]*models.AuditLogEntry, error) {
	out := make([]*models.AuditLogEntry, 0, len(s.appended)+len(s.standalone))
	out = append(out, s.appended...)
	out = append(out, s.standalone...)
	return out, nil
}

type fakeUserStore struct {
	byEmail map[string]*models.User
	deleted []string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, q scope.Querier, user *models.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// addPrincipal seeds a principal with a synthetic email derived from its ID.
func (s *fakeUserStore) addPrincipal(id string, role models.Role) {
	email := id + "@campus.edu"
	s.byEmail[email] = &models.User{ID: id, Email: email, Role: role}
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *fakeUserStore) DeleteUser(ctx context.Context, q scope.Querier, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeLecturerCreator struct {
	created []string
	err     error
}

func (s *fakeLecturerCreator) CreateProfile(ctx context.Context, q scope.Querier, userID string) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, userID)
	return nil
}

type fakeSessionStore struct {
	created map[string]string // tokenID -> userID
	revoked []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{created: make(map[string]string)}
}

func (s *fakeSessionStore) Create(ctx context.Context, tokenID, userID string, expiresAt time.Time) error {
	s.created[tokenID] = userID
	return nil
}

func (s *fakeSessionStore) Revoke(ctx context.Context, tokenID string) error {
	if _, ok := s.created[tokenID]; !ok {
		return apperrors.ErrTokenInvalid
	}
	s.revoked = append(s.revoked, tokenID)
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateSessionToken(user *models.User) (string, string, time.Time, error) {
	return "signed-token-" + user.ID, uuid.New().String(), time.Now().Add(time.Hour), nil
}

type fakeStudentStore struct {
	byUserID   map[string]*models.StudentProfile
	inserts    int
	collisions int // first N inserts fail with a matric collision
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{byUserID: make(map[string]*models.StudentProfile)}
}

func (s *fakeStudentStore) GetByUserID(ctx context.Context, q scope.Querier, userID string) (*models.StudentProfile, error) {
	student, ok := s.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (s *fakeStudentStore) Insert(ctx context.Context, q scope.Querier, student *models.StudentProfile) error {
	s.inserts++
	if s.inserts <= s.collisions {
		return apperrors.ErrMatricNoExists
	}
	copied := *student
	s.byUserID[student.UserID] = &copied
	return nil
}

func (s *fakeStudentStore) Update(ctx context.Context, q scope.Querier, student *models.StudentProfile) error {
	existing, ok := s.byUserID[student.UserID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	existing.Programme = student.Programme
	existing.Address = student.Address
	existing.EncryptedNationalID = student.EncryptedNationalID
	return nil
}

func (s *fakeStudentStore) List(ctx context.Context, q scope.Querier) ([]*models.StudentProfile, error) {
	out := make([]*models.StudentProfile, 0, len(s.byUserID))
	for _, student := range s.byUserID {
		copied := *student
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeStudentStore) Delete(ctx context.Context, q scope.Querier, studentID string) (string, error) {
	for userID, student := range s.byUserID {
		if student.StudentID == studentID {
			delete(s.byUserID, userID)
			return userID, nil
		}
	}
	return "", apperrors.ErrStudentNotFound
}

type enrollKey struct{ studentID, courseID string }

type fakeEnrollmentStore struct {
	enrollments map[enrollKey]*models.Enrollment
	grades      map[string]string // enrollmentID -> value
	sheet       []*models.GradeSheetRow
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		enrollments: make(map[enrollKey]*models.Enrollment),
		grades:      make(map[string]string),
	}
}

func (s *fakeEnrollmentStore) Insert(ctx context.Context, q scope.Querier, studentID, courseID string) (bool, error) {
	key := enrollKey{studentID, courseID}
	if _, ok := s.enrollments[key]; ok {
		return false, nil
	}
	s.enrollments[key] = &models.Enrollment{
		EnrollmentID: uuid.New().String(),
		StudentID:    studentID,
		CourseID:     courseID,
	}
	return true, nil
}

func (s *fakeEnrollmentStore) GetByID(ctx context.Context, q scope.Querier, enrollmentID string) (*models.Enrollment, error) {
	for _, e := range s.enrollments {
		if e.EnrollmentID == enrollmentID {
			return e, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (s *fakeEnrollmentStore) UpsertGrade(ctx context.Context, q scope.Querier, enrollmentID, value string) error {
	s.grades[enrollmentID] = value
	return nil
}

func (s *fakeEnrollmentStore) UpdateGrade(ctx context.Context, q scope.Querier, studentID, courseID, value string) error {
	e, ok := s.enrollments[enrollKey{studentID, courseID}]
	if !ok {
		return apperrors.ErrGradeNotFound
	}
	if _, ok := s.grades[e.EnrollmentID]; !ok {
		return apperrors.ErrGradeNotFound
	}
	s.grades[e.EnrollmentID] = value
	return nil
}

func (s *fakeEnrollmentStore) GradeSheetForLecturer(ctx context.Context, userID string) ([]*models.GradeSheetRow, error) {
	return s.sheet, nil
}

// fakeOwnership maps course IDs to the lecturer user that owns them.
type fakeOwnership struct {
	owners map[string]string
}

func (s *fakeOwnership) OwnsCourse(ctx context.Context, q scope.Querier, userID, courseID string) (bool, error) {
	return s.owners[courseID] == userID, nil
}
