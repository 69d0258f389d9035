package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
	"github.com/securecampus/campuscore/internal/pkg/dberrors"
	"github.com/securecampus/campuscore/internal/pkg/logger"
)

// StudentRepository handles student profile database operations. All scoped
// methods take a Querier so they run inside the caller's row-scoped
// transaction; row-level policies on student_profiles then restrict what a
// Student session can see.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUserID retrieves a student profile by the owning principal's ID.
func (r *StudentRepository) GetByUserID(ctx context.Context, q scope.Querier, userID string) (*models.StudentProfile, error) {
	var student models.StudentProfile
	err := q.QueryRow(ctx, `
		SELECT student_id, user_id, matric_no, programme, intake_year, address
		FROM student_profiles
		WHERE user_id = $1`,
		userID).Scan(
		&student.StudentID, &student.UserID, &student.MatricNo,
		&student.Programme, &student.IntakeYear, &student.Address)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return &student, nil
}

// Insert creates a new student profile. A matric number collision maps to
// apperrors.ErrMatricNoExists so the caller can regenerate.
func (r *StudentRepository) Insert(ctx context.Context, q scope.Querier, student *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("student_id", "user_id", "matric_no", "programme", "intake_year", "address", "national_id_enc").
		Values(student.StudentID, student.UserID, student.MatricNo, student.Programme,
			student.IntakeYear, student.Address, student.EncryptedNationalID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert student query: %w", err)
	}

	_, err = q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_matric_no_key") {
			return apperrors.ErrMatricNoExists
		}
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_user_id_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("userID", student.UserID).Msg("Error executing insert student query")
		return fmt.Errorf("error creating student profile: %w", err)
	}

	logger.Info().Str("userID", student.UserID).Str("matricNo", student.MatricNo).Msg("Student profile created")
	return nil
}

// Update mutates the caller-editable profile fields. StudentID and MatricNo
// are never touched.
func (r *StudentRepository) Update(ctx context.Context, q scope.Querier, student *models.StudentProfile) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("programme", student.Programme).
		Set("address", student.Address).
		Set("national_id_enc", student.EncryptedNationalID).
		Where(squirrel.Eq{"user_id": student.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// List returns the student profiles visible to the bound session. The row
// level policy on student_profiles does the per-row filtering; the encrypted
// national ID column is deliberately not selected.
func (r *StudentRepository) List(ctx context.Context, q scope.Querier) ([]*models.StudentProfile, error) {
	rows, err := q.Query(ctx, `
		SELECT student_id, user_id, matric_no, programme, intake_year, address
		FROM student_profiles
		ORDER BY matric_no`)
	if err != nil {
		return nil, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		var student models.StudentProfile
		if err := rows.Scan(&student.StudentID, &student.UserID, &student.MatricNo,
			&student.Programme, &student.IntakeYear, &student.Address); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Delete removes a student profile by its StudentID. Dependent enrollments
// cascade at the store level.
func (r *StudentRepository) Delete(ctx context.Context, q scope.Querier, studentID string) (string, error) {
	var userID string
	err := q.QueryRow(ctx, `
		DELETE FROM student_profiles WHERE student_id = $1 RETURNING user_id`,
		studentID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrStudentNotFound
		}
		return "", fmt.Errorf("error deleting student profile: %w", err)
	}
	return userID, nil
}
