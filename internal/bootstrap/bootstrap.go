package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/securecampus/campuscore/internal/app/auth"
	appControllers "github.com/securecampus/campuscore/internal/app/controllers"
	appMigrations "github.com/securecampus/campuscore/internal/app/migrations"
	appRepos "github.com/securecampus/campuscore/internal/app/repositories"
	appRoutes "github.com/securecampus/campuscore/internal/app/routes"
	"github.com/securecampus/campuscore/internal/app/scope"
	appServices "github.com/securecampus/campuscore/internal/app/services"
	"github.com/securecampus/campuscore/internal/config"
	"github.com/securecampus/campuscore/internal/db"
	appMiddleware "github.com/securecampus/campuscore/internal/middleware"
	pkgAuth "github.com/securecampus/campuscore/internal/pkg/auth"
	"github.com/securecampus/campuscore/internal/pkg/fieldcrypt"
	"github.com/securecampus/campuscore/internal/pkg/helpers"
	"github.com/securecampus/campuscore/internal/pkg/logger"
	"github.com/securecampus/campuscore/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	StudentService       *appServices.StudentService
	LecturerService      *appServices.LecturerService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	AuditService         *appServices.AuditService
	AdminService         *appServices.AdminService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	LecturerController   *appControllers.LecturerController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	AdminController      *appControllers.AdminController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	AuthzService         *appAuth.AuthorizationService
	Enforcer             *scope.Enforcer
	Crypt                *fieldcrypt.Provider
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed the bootstrap administrator after migrations
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Enforcer = scope.NewEnforcer(dbPool, lgr)

	var err error
	deps.Crypt, err = fieldcrypt.NewProvider(cfg.Encryption.Key)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize field encryption")
		return nil, fmt.Errorf("failed to initialize field encryption: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.LecturerRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 1*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuditService = appServices.NewAuditService(deps.Repos.AuditRepository, lgr)

	deps.LecturerService = appServices.NewLecturerService(
		deps.Repos.LecturerRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		deps.AuditService,
		deps.Enforcer,
		lgr,
	)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.LecturerService,
		deps.Repos.SessionRepository,
		deps.AuditService,
		deps.JWTService,
		deps.Enforcer,
		lgr,
	)

	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.UserRepository,
		deps.Crypt,
		deps.AuthzService,
		deps.AuditService,
		deps.Enforcer,
		lgr,
	)

	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.AuthzService,
		deps.AuditService,
		deps.Enforcer,
		lgr,
	)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.AuthzService,
		deps.AuditService,
		deps.Enforcer,
		lgr,
	)

	deps.AdminService = appServices.NewAdminService(
		deps.Repos.StatsRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.SessionRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.LecturerController = appControllers.NewLecturerController(deps.LecturerService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.AuditService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.LecturerController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
