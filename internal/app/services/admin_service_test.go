package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAuth "github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

type fakeStatsStore struct {
	totals models.AdminStats
}

func (s *fakeStatsStore) Totals(ctx context.Context) (*models.AdminStats, error) {
	totals := s.totals
	return &totals, nil
}

func TestGetStatsAdminOnly(t *testing.T) {
	store := &fakeStatsStore{totals: models.AdminStats{
		TotalUsers:     10,
		TotalStudents:  6,
		TotalLecturers: 3,
		TotalCourses:   4,
	}}
	svc := NewAdminService(store, appAuth.NewAuthorizationService(&fakeOwnership{}), zerolog.Nop())

	_, err := svc.GetStats(context.Background(), studentSession("user-1"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetStats(context.Background(), lecturerSession("lect-1"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	stats, err := svc.GetStats(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 6, stats.TotalStudents)
}
