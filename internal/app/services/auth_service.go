package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
	"github.com/securecampus/campuscore/internal/pkg/auth"
)

// UserStore is the persistence surface the auth service needs for
// principals.
type UserStore interface {
	CreateUser(ctx context.Context, q scope.Querier, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// LecturerProfileCreator creates the system-initiated lecturer profile at
// registration time.
type LecturerProfileCreator interface {
	CreateProfile(ctx context.Context, q scope.Querier, userID string) error
}

// SessionStore tracks issued session tokens for server-side invalidation.
type SessionStore interface {
	Create(ctx context.Context, tokenID, userID string, expiresAt time.Time) error
	Revoke(ctx context.Context, tokenID string) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateSessionToken(user *models.User) (token string, tokenID string, expiresAt time.Time, err error)
}

// AuthService handles registration, authentication and session lifecycle.
type AuthService struct {
	userStore    UserStore
	lecturers    LecturerProfileCreator
	sessionStore SessionStore
	audit        *AuditService
	tokens       TokenIssuer
	runner       scope.Runner
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore UserStore,
	lecturers LecturerProfileCreator,
	sessionStore SessionStore,
	audit *AuditService,
	tokens TokenIssuer,
	runner scope.Runner,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:    userStore,
		lecturers:    lecturers,
		sessionStore: sessionStore,
		audit:        audit,
		tokens:       tokens,
		runner:       runner,
		logger:       logger,
	}
}

// LoginResult carries the issued session token back to the caller.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrValidationFailed)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", apperrors.ErrValidationFailed)
	}

	return nil
}

// Register creates a new principal. Emails are normalized to lower case
// before storage and comparison, so uniqueness is case-insensitive by
// construction rather than by collation accident. When the role is Lecturer
// a lecturer profile is created in the same transaction; that coupling is an
// application invariant, not a caller responsibility.
func (s *AuthService) Register(ctx context.Context, roleRaw, firstName, lastName, email, password string) (*models.User, error) {
	role, err := models.ParseRole(roleRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRole, err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}

	exists, err := s.userStore.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}

	err = s.runner.WithSystem(ctx, func(q scope.Querier) error {
		if err := s.userStore.CreateUser(ctx, q, user); err != nil {
			return err
		}

		if role == models.RoleLecturer {
			if err := s.lecturers.CreateProfile(ctx, q, user.ID); err != nil {
				return fmt.Errorf("lecturer profile creation error: %w", err)
			}
		}

		actor := &scope.Session{UserID: user.ID, Role: role}
		return s.audit.Record(ctx, q, actor, models.ActionRegisterUser, user.Email, models.AuditSuccess)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return user, nil
}

// Authenticate verifies credentials and issues a session token. An unknown
// email and a wrong password both return ErrInvalidCredentials; nothing in
// the response distinguishes the two cases.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userStore.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, tokenID, expiresAt, err := s.tokens.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.sessionStore.Create(ctx, tokenID, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("session record error: %w", err)
	}

	actor := &scope.Session{UserID: user.ID, Role: user.Role, TokenID: tokenID}
	if err := s.audit.RecordStandalone(ctx, actor, models.ActionLogin, user.Email, models.AuditSuccess); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the session token server-side. The session context value
// held by the caller is useless afterwards.
func (s *AuthService) Logout(ctx context.Context, sess *scope.Session) error {
	if sess == nil || sess.TokenID == "" {
		return apperrors.ErrSessionRequired
	}
	if err := s.sessionStore.Revoke(ctx, sess.TokenID); err != nil {
		return err
	}
	if err := s.audit.RecordStandalone(ctx, sess, models.ActionLogout, sess.TokenID, models.AuditSuccess); err != nil {
		return err
	}
	s.logger.Info().Str("userID", sess.UserID).Msg("Session revoked")
	return nil
}
