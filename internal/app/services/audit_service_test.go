package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

func TestRecordPopulatesEntry(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, zerolog.Nop())
	sess := &scope.Session{UserID: "admin-1", Role: models.RoleAdmin, TokenID: "t"}

	err := svc.Record(context.Background(), nil, sess, models.ActionCreateCourse, "CS101", models.AuditSuccess)
	require.NoError(t, err)

	require.Len(t, store.appended, 1)
	entry := store.appended[0]
	assert.NotEmpty(t, entry.LogID)
	assert.Equal(t, models.RoleAdmin, entry.ActorRole)
	assert.Equal(t, "admin-1", entry.ActorUserID)
	assert.Equal(t, models.ActionCreateCourse, entry.Action)
	assert.Equal(t, "CS101", entry.TargetEntity)
	assert.Equal(t, models.AuditSuccess, entry.Status)
}

func TestRecordRequiresSession(t *testing.T) {
	svc := NewAuditService(&fakeAuditStore{}, zerolog.Nop())

	err := svc.Record(context.Background(), nil, nil, models.ActionCreateCourse, "CS101", models.AuditSuccess)
	assert.ErrorIs(t, err, apperrors.ErrSessionRequired)
}

func TestRecordDeniedSwallowsStoreFailure(t *testing.T) {
	store := &fakeAuditStore{appendErr: assert.AnError}
	svc := NewAuditService(store, zerolog.Nop())
	sess := &scope.Session{UserID: "user-1", Role: models.RoleStudent, TokenID: "t"}

	// Must not panic or surface the store error; the denial itself is what
	// the caller reports.
	svc.RecordDenied(context.Background(), sess, models.ActionDeleteCourse, "course-1")
	svc.RecordDenied(context.Background(), nil, models.ActionDeleteCourse, "course-1")
}

func TestListIsAdminOnly(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, zerolog.Nop())

	_, err := svc.List(context.Background(), &scope.Session{UserID: "user-1", Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.List(context.Background(), &scope.Session{UserID: "lect-1", Role: models.RoleLecturer})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	entries, err := svc.List(context.Background(), &scope.Session{UserID: "admin-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListOrdersMostRecentFirst(t *testing.T) {
	now := time.Now()
	store := &fakeAuditStore{appended: []*models.AuditLogEntry{
		{LogID: "middle", Timestamp: now.Add(-time.Minute)},
		{LogID: "newest", Timestamp: now},
		{LogID: "oldest", Timestamp: now.Add(-time.Hour)},
	}}
	svc := NewAuditService(store, zerolog.Nop())

	entries, err := svc.List(context.Background(), &scope.Session{UserID: "admin-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].LogID)
	assert.Equal(t, "middle", entries[1].LogID)
	assert.Equal(t, "oldest", entries[2].LogID)
}
