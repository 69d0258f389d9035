package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models"
	appRepos "github.com/securecampus/campuscore/internal/app/repositories"
	"github.com/securecampus/campuscore/internal/config"
	pkgAuth "github.com/securecampus/campuscore/internal/pkg/auth"
)

const defaultAdminEmail = "admin@campus.edu"

// CreateDefaultData provisions the bootstrap administrator if no principal
// with the default admin email exists yet. Every later admin action flows
// through the normal audited paths; only this first principal is created
// out-of-band.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for default admin: %w", err)
	}
	if exists {
		lgr.Debug().Msg("Default admin already present, skipping seed")
		return nil
	}

	password := config.GetEnv("ADMIN_DEFAULT_PASSWORD", "ChangeMe123!")
	hash, err := pkgAuth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         models.RoleAdmin,
	}

	if err := userRepo.CreateUser(ctx, dbPool, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin created")
	return nil
}
