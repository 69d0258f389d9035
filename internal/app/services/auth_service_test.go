package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
	"github.com/securecampus/campuscore/internal/pkg/auth"
)

func newAuthServiceForTest(users *fakeUserStore, lecturers *fakeLecturerCreator, sessions *fakeSessionStore, audit *fakeAuditStore) *AuthService {
	auditSvc := NewAuditService(audit, zerolog.Nop())
	return NewAuthService(users, lecturers, sessions, auditSvc, fakeTokenIssuer{}, &fakeRunner{}, zerolog.Nop())
}

func TestRegisterStudent(t *testing.T) {
	users := newFakeUserStore()
	audit := &fakeAuditStore{}
	svc := newAuthServiceForTest(users, &fakeLecturerCreator{}, newFakeSessionStore(), audit)

	user, err := svc.Register(context.Background(), "Student", "Jane", "Doe", "Jane.Doe@Campus.EDU", "passw0rd1")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	// Emails are normalized to lower case before storage
	assert.Equal(t, "jane.doe@campus.edu", user.Email)
	assert.NotEqual(t, "passw0rd1", user.PasswordHash)

	require.Len(t, audit.appended, 1)
	assert.Equal(t, models.ActionRegisterUser, audit.appended[0].Action)
	assert.Equal(t, models.AuditSuccess, audit.appended[0].Status)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthServiceForTest(users, &fakeLecturerCreator{}, newFakeSessionStore(), &fakeAuditStore{})

	_, err := svc.Register(context.Background(), "Student", "Jane", "Doe", "jane@campus.edu", "passw0rd1")
	require.NoError(t, err)

	// Same email with different case must still collide
	_, err = svc.Register(context.Background(), "Student", "Janet", "Doe", "JANE@campus.edu", "passw0rd2")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Len(t, users.byEmail, 1)
}

func TestRegisterLecturerCreatesProfile(t *testing.T) {
	users := newFakeUserStore()
	lecturers := &fakeLecturerCreator{}
	svc := newAuthServiceForTest(users, lecturers, newFakeSessionStore(), &fakeAuditStore{})

	user, err := svc.Register(context.Background(), "Lecturer", "Alan", "Turing", "alan@campus.edu", "passw0rd1")
	require.NoError(t, err)

	require.Len(t, lecturers.created, 1)
	assert.Equal(t, user.ID, lecturers.created[0])
}

func TestRegisterLecturerProfileFailureAbortsRegistration(t *testing.T) {
	users := newFakeUserStore()
	lecturers := &fakeLecturerCreator{err: assert.AnError}
	svc := newAuthServiceForTest(users, lecturers, newFakeSessionStore(), &fakeAuditStore{})

	_, err := svc.Register(context.Background(), "Lecturer", "Alan", "Turing", "alan@campus.edu", "passw0rd1")
	assert.Error(t, err)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserStore(), &fakeLecturerCreator{}, newFakeSessionStore(), &fakeAuditStore{})

	_, err := svc.Register(context.Background(), "Registrar", "Jane", "Doe", "jane@campus.edu", "passw0rd1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserStore(), &fakeLecturerCreator{}, newFakeSessionStore(), &fakeAuditStore{})

	cases := []string{"short1", "onlyletters", "12345678"}
	for _, password := range cases {
		_, err := svc.Register(context.Background(), "Student", "Jane", "Doe", "jane@campus.edu", password)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "password %q should be rejected", password)
	}
}

func TestAuthenticateIndistinguishableFailures(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthServiceForTest(users, &fakeLecturerCreator{}, newFakeSessionStore(), &fakeAuditStore{})

	_, err := svc.Register(context.Background(), "Student", "Jane", "Doe", "jane@campus.edu", "passw0rd1")
	require.NoError(t, err)

	// Unknown email and wrong password must be the same error value.
	_, unknownErr := svc.Authenticate(context.Background(), "nobody@campus.edu", "passw0rd1")
	_, wrongErr := svc.Authenticate(context.Background(), "jane@campus.edu", "wrongpass1")

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthenticateIssuesSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	audit := &fakeAuditStore{}
	svc := newAuthServiceForTest(users, &fakeLecturerCreator{}, sessions, audit)

	registered, err := svc.Register(context.Background(), "Student", "Jane", "Doe", "jane@campus.edu", "passw0rd1")
	require.NoError(t, err)

	result, err := svc.Authenticate(context.Background(), "Jane@Campus.edu", "passw0rd1")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.Len(t, sessions.created, 1)

	// The issued session leaves a Login entry in the trail.
	require.Len(t, audit.standalone, 1)
	assert.Equal(t, models.ActionLogin, audit.standalone[0].Action)
	assert.Equal(t, registered.ID, audit.standalone[0].ActorUserID)
	assert.Equal(t, models.AuditSuccess, audit.standalone[0].Status)
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newFakeSessionStore()
	sessions.created["token-1"] = "user-1"
	audit := &fakeAuditStore{}
	svc := newAuthServiceForTest(newFakeUserStore(), &fakeLecturerCreator{}, sessions, audit)

	sess := &scope.Session{UserID: "user-1", Role: models.RoleStudent, TokenID: "token-1"}
	require.NoError(t, svc.Logout(context.Background(), sess))
	assert.Equal(t, []string{"token-1"}, sessions.revoked)

	require.Len(t, audit.standalone, 1)
	assert.Equal(t, models.ActionLogout, audit.standalone[0].Action)
	assert.Equal(t, models.AuditSuccess, audit.standalone[0].Status)
}

func TestLogoutWithoutSession(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserStore(), &fakeLecturerCreator{}, newFakeSessionStore(), &fakeAuditStore{})

	assert.ErrorIs(t, svc.Logout(context.Background(), nil), apperrors.ErrSessionRequired)
	assert.ErrorIs(t, svc.Logout(context.Background(), &scope.Session{UserID: "u"}), apperrors.ErrSessionRequired)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("passw0rd1")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "passw0rd1"))
	assert.False(t, auth.CheckPassword(hash, "passw0rd2"))
}
