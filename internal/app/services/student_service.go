package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/auth"
	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
	"github.com/securecampus/campuscore/internal/pkg/fieldcrypt"
)

// matricAttempts bounds how often a colliding matric number is regenerated
// before the upsert is reported as failed.
const matricAttempts = 5

// StudentStore is the persistence surface the student service needs.
type StudentStore interface {
	GetByUserID(ctx context.Context, q scope.Querier, userID string) (*models.StudentProfile, error)
	Insert(ctx context.Context, q scope.Querier, student *models.StudentProfile) error
	Update(ctx context.Context, q scope.Querier, student *models.StudentProfile) error
	List(ctx context.Context, q scope.Querier) ([]*models.StudentProfile, error)
	Delete(ctx context.Context, q scope.Querier, studentID string) (string, error)
}

// PrincipalStore resolves and removes principals for profile operations.
type PrincipalStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, q scope.Querier, id string) error
}

// StudentService implements create-or-update semantics for student profiles,
// including national ID encryption and matric number derivation.
type StudentService struct {
	store  StudentStore
	users  PrincipalStore
	crypt  *fieldcrypt.Provider
	authz  *auth.AuthorizationService
	audit  *AuditService
	runner scope.Runner
	logger zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	store StudentStore,
	users PrincipalStore,
	crypt *fieldcrypt.Provider,
	authz *auth.AuthorizationService,
	audit *AuditService,
	runner scope.Runner,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		store:  store,
		users:  users,
		crypt:  crypt,
		authz:  authz,
		audit:  audit,
		runner: runner,
		logger: logger,
	}
}

// GenerateMatricNo derives a matric number: 4-digit intake year followed by
// a 6-digit numeric suffix.
func GenerateMatricNo(intakeYear int) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate matric suffix: %w", err)
	}
	return fmt.Sprintf("%04d%06d", intakeYear, n.Int64()), nil
}

// UpsertProfile creates the student profile on first save and updates it on
// subsequent saves. StudentID and MatricNo are assigned once and never
// change; Programme, Address and the encrypted national ID are the only
// mutable fields. A matric number collision restarts the insert in a fresh
// transaction with a regenerated number, up to matricAttempts times.
func (s *StudentService) UpsertProfile(ctx context.Context, sess *scope.Session, userID, programme, nationalID, address string) error {
	if err := s.authz.RequireSelfOrAdmin(sess, userID); err != nil {
		s.audit.RecordDenied(ctx, sess, models.ActionUpsertProfile, userID)
		return err
	}
	if strings.TrimSpace(programme) == "" || strings.TrimSpace(nationalID) == "" {
		return fmt.Errorf("%w: programme and national ID are required", apperrors.ErrValidationFailed)
	}

	// A student profile binds 1:1 to a Student principal; an Admin targeting
	// a principal of another role must be refused before any write.
	target, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role != models.RoleStudent {
		return fmt.Errorf("%w: principal %s is not a student", apperrors.ErrValidationFailed, userID)
	}

	// The encryption key is unlocked only for the duration of this one
	// operation.
	var sealed []byte
	err = s.crypt.WithKey(func(c *fieldcrypt.Cipher) error {
		var cerr error
		sealed, cerr = c.Encrypt(nationalID)
		return cerr
	})
	if err != nil {
		return fmt.Errorf("failed to encrypt national ID: %w", err)
	}

	for attempt := 0; attempt < matricAttempts; attempt++ {
		err = s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
			existing, gerr := s.store.GetByUserID(ctx, q, userID)
			if gerr != nil && !errors.Is(gerr, apperrors.ErrStudentNotFound) {
				return gerr
			}

			if existing != nil {
				existing.Programme = programme
				existing.Address = address
				existing.EncryptedNationalID = sealed
				if uerr := s.store.Update(ctx, q, existing); uerr != nil {
					return uerr
				}
				return s.audit.Record(ctx, q, sess, models.ActionUpsertProfile, existing.StudentID, models.AuditSuccess)
			}

			intakeYear := time.Now().Year()
			matricNo, merr := GenerateMatricNo(intakeYear)
			if merr != nil {
				return merr
			}

			student := &models.StudentProfile{
				StudentID:           uuid.New().String(),
				UserID:              userID,
				MatricNo:            matricNo,
				Programme:           programme,
				IntakeYear:          intakeYear,
				Address:             address,
				EncryptedNationalID: sealed,
			}
			if ierr := s.store.Insert(ctx, q, student); ierr != nil {
				return ierr
			}
			return s.audit.Record(ctx, q, sess, models.ActionUpsertProfile, student.StudentID, models.AuditSuccess)
		})

		if errors.Is(err, apperrors.ErrMatricNoExists) {
			s.logger.Warn().Str("userID", userID).Int("attempt", attempt+1).Msg("Matric number collision, regenerating")
			continue
		}
		return err
	}

	return fmt.Errorf("%w: could not assign a unique matric number", apperrors.ErrMatricNoExists)
}

// GetStudents returns the student profiles visible to the session. The row
// scope restricts a Student to their own row; the result never includes the
// national ID in any form.
func (s *StudentService) GetStudents(ctx context.Context, sess *scope.Session) ([]*models.StudentProfile, error) {
	var students []*models.StudentProfile
	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		var lerr error
		students, lerr = s.store.List(ctx, q)
		return lerr
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// GetOwnProfile returns the session principal's own student profile.
func (s *StudentService) GetOwnProfile(ctx context.Context, sess *scope.Session) (*models.StudentProfile, error) {
	var student *models.StudentProfile
	err := s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		var gerr error
		student, gerr = s.store.GetByUserID(ctx, q, sess.UserID)
		return gerr
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student profile, its principal and (through the
// store's cascade) its enrollments. Admin only.
func (s *StudentService) DeleteStudent(ctx context.Context, sess *scope.Session, studentID string) error {
	if err := s.authz.RequireAdmin(sess); err != nil {
		s.audit.RecordDenied(ctx, sess, models.ActionDeleteStudent, studentID)
		return err
	}

	return s.runner.WithScope(ctx, sess, func(q scope.Querier) error {
		userID, err := s.store.Delete(ctx, q, studentID)
		if err != nil {
			return err
		}
		if err := s.users.DeleteUser(ctx, q, userID); err != nil {
			return fmt.Errorf("failed to delete student principal: %w", err)
		}
		return s.audit.Record(ctx, q, sess, models.ActionDeleteStudent, studentID, models.AuditSuccess)
	})
}
