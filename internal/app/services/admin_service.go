package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
)

// StatsStore computes dashboard totals.
type StatsStore interface {
	Totals(ctx context.Context) (*models.AdminStats, error)
}

// AdminService serves the administrator dashboard.
type AdminService struct {
	stats  StatsStore
	authz  *auth.AuthorizationService
	logger zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(stats StatsStore, authz *auth.AuthorizationService, logger zerolog.Logger) *AdminService {
	return &AdminService{stats: stats, authz: authz, logger: logger}
}

// GetStats returns record totals. Admin only.
func (s *AdminService) GetStats(ctx context.Context, sess *scope.Session) (*models.AdminStats, error) {
	if err := s.authz.RequireAdmin(sess); err != nil {
		return nil, err
	}
	return s.stats.Totals(ctx)
}
