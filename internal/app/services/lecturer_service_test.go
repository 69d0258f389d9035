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

type fakeLecturerStore struct {
	byUserID map[string]*models.LecturerProfile
}

func newFakeLecturerStore() *fakeLecturerStore {
	return &fakeLecturerStore{byUserID: make(map[string]*models.LecturerProfile)}
}

func (s *fakeLecturerStore) Insert(ctx context.Context, q scope.Querier, lecturer *models.LecturerProfile) error {
	// Mirrors ON CONFLICT DO NOTHING on user_id
	if _, ok := s.byUserID[lecturer.UserID]; ok {
		return nil
	}
	s.byUserID[lecturer.UserID] = lecturer
	return nil
}

func (s *fakeLecturerStore) List(ctx context.Context) ([]*models.LecturerProfile, error) {
	out := make([]*models.LecturerProfile, 0, len(s.byUserID))
	for _, l := range s.byUserID {
		out = append(out, l)
	}
	return out, nil
}

func (s *fakeLecturerStore) Delete(ctx context.Context, q scope.Querier, lecturerID string) (string, error) {
	for userID, l := range s.byUserID {
		if l.LecturerID == lecturerID {
			delete(s.byUserID, userID)
			return userID, nil
		}
	}
	return "", apperrors.ErrLecturerNotFound
}

func newLecturerServiceForTest(store *fakeLecturerStore, users *fakeUserStore, audit *fakeAuditStore) *LecturerService {
	authz := appAuth.NewAuthorizationService(&fakeOwnership{})
	auditSvc := NewAuditService(audit, zerolog.Nop())
	return NewLecturerService(store, users, authz, auditSvc, &fakeRunner{}, zerolog.Nop())
}

func TestDeriveStaffNo(t *testing.T) {
	assert.Equal(t, "STAFF-9e44", DeriveStaffNo("6f1d1c3a-9b2e-4a77-8f0e-2d5a7c1b9e44"))
	assert.Equal(t, "STAFF-ab", DeriveStaffNo("ab"))
	// Deterministic: same input, same number
	assert.Equal(t, DeriveStaffNo("user-1234"), DeriveStaffNo("user-1234"))
}

func TestCreateProfileDefaults(t *testing.T) {
	store := newFakeLecturerStore()
	svc := newLecturerServiceForTest(store, newFakeUserStore(), &fakeAuditStore{})

	require.NoError(t, svc.CreateProfile(context.Background(), nil, "user-1234"))

	profile := store.byUserID["user-1234"]
	require.NotNil(t, profile)
	assert.Equal(t, "STAFF-1234", profile.StaffNo)
	assert.Equal(t, "General", profile.Department)
}

func TestCreateProfileIsIdempotent(t *testing.T) {
	store := newFakeLecturerStore()
	svc := newLecturerServiceForTest(store, newFakeUserStore(), &fakeAuditStore{})

	require.NoError(t, svc.CreateProfile(context.Background(), nil, "user-1234"))
	first := store.byUserID["user-1234"].LecturerID

	require.NoError(t, svc.CreateProfile(context.Background(), nil, "user-1234"))
	assert.Equal(t, first, store.byUserID["user-1234"].LecturerID)
	assert.Len(t, store.byUserID, 1)
}

func TestCreateLecturerProfileRequiresAdmin(t *testing.T) {
	svc := newLecturerServiceForTest(newFakeLecturerStore(), newFakeUserStore(), &fakeAuditStore{})

	err := svc.CreateLecturerProfile(context.Background(), lecturerSession("lect-1"), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteLecturerRemovesPrincipal(t *testing.T) {
	store := newFakeLecturerStore()
	users := newFakeUserStore()
	audit := &fakeAuditStore{}
	svc := newLecturerServiceForTest(store, users, audit)

	require.NoError(t, svc.CreateProfile(context.Background(), nil, "user-1234"))
	lecturerID := store.byUserID["user-1234"].LecturerID

	require.NoError(t, svc.DeleteLecturer(context.Background(), adminSession(), lecturerID))

	assert.Empty(t, store.byUserID)
	assert.Equal(t, []string{"user-1234"}, users.deleted)
	require.Len(t, audit.appended, 1)
	assert.Equal(t, models.ActionDeleteLecturer, audit.appended[0].Action)
}

func TestDeleteLecturerDeniedForNonAdmin(t *testing.T) {
	store := newFakeLecturerStore()
	audit := &fakeAuditStore{}
	svc := newLecturerServiceForTest(store, newFakeUserStore(), audit)

	err := svc.DeleteLecturer(context.Background(), studentSession("user-1"), "lect-1")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	require.Len(t, audit.standalone, 1)
	assert.Equal(t, models.AuditFailure, audit.standalone[0].Status)
}
