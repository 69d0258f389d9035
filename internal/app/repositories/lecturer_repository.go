package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
	"github.com/securecampus/campuscore/internal/pkg/dberrors"
)

// LecturerRepository handles lecturer profile database operations
type LecturerRepository struct {
	db *pgxpool.Pool
}

// NewLecturerRepository creates a new LecturerRepository
func NewLecturerRepository(db *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// Insert creates a lecturer profile. Creation is idempotent in intent: a
// profile that already exists for the user is not an error.
func (r *LecturerRepository) Insert(ctx context.Context, q scope.Querier, lecturer *models.LecturerProfile) error {
	_, err := q.Exec(ctx, `
		INSERT INTO lecturer_profiles (lecturer_id, user_id, staff_no, department)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`,
		lecturer.LecturerID, lecturer.UserID, lecturer.StaffNo, lecturer.Department)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating lecturer profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves a lecturer profile by the owning principal's ID
func (r *LecturerRepository) GetByUserID(ctx context.Context, userID string) (*models.LecturerProfile, error) {
	var lecturer models.LecturerProfile
	err := r.db.QueryRow(ctx, `
		SELECT lecturer_id, user_id, staff_no, department
		FROM lecturer_profiles
		WHERE user_id = $1`,
		userID).Scan(&lecturer.LecturerID, &lecturer.UserID, &lecturer.StaffNo, &lecturer.Department)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error retrieving lecturer profile: %w", err)
	}

	return &lecturer, nil
}

// List returns all lecturer profiles ordered by staff number
func (r *LecturerRepository) List(ctx context.Context) ([]*models.LecturerProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT lecturer_id, user_id, staff_no, department
		FROM lecturer_profiles
		ORDER BY staff_no`)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturer profiles: %w", err)
	}
	defer rows.Close()

	var lecturers []*models.LecturerProfile
	for rows.Next() {
		var lecturer models.LecturerProfile
		if err := rows.Scan(&lecturer.LecturerID, &lecturer.UserID, &lecturer.StaffNo, &lecturer.Department); err != nil {
			return nil, fmt.Errorf("error scanning lecturer row: %w", err)
		}
		lecturers = append(lecturers, &lecturer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lecturer rows: %w", err)
	}

	return lecturers, nil
}

// Delete removes a lecturer profile by LecturerID and returns the owning
// user ID for auditing.
func (r *LecturerRepository) Delete(ctx context.Context, q scope.Querier, lecturerID string) (string, error) {
	var userID string
	err := q.QueryRow(ctx, `
		DELETE FROM lecturer_profiles WHERE lecturer_id = $1 RETURNING user_id`,
		lecturerID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrLecturerNotFound
		}
		return "", fmt.Errorf("error deleting lecturer profile: %w", err)
	}
	return userID, nil
}

// OwnsCourse reports whether the lecturer profile bound to userID owns the
// given course.
func (r *LecturerRepository) OwnsCourse(ctx context.Context, q scope.Querier, userID, courseID string) (bool, error) {
	var owns bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM courses c
			JOIN lecturer_profiles lp ON c.lecturer_id = lp.lecturer_id
			WHERE c.course_id = $1 AND lp.user_id = $2)`,
		courseID, userID).Scan(&owns)
	if err != nil {
		return false, fmt.Errorf("error checking course ownership: %w", err)
	}
	return owns, nil
}
