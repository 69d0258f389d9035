package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// EnrollmentRepository handles enrollment and grade database operations.
// The (student_id, course_id) unique constraint and the ON CONFLICT clauses
// make the mutations safe under concurrency without application locks.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Insert adds an enrollment if the (student, course) pair is absent. It
// reports whether a new row was created; enrolling an existing pair is a
// no-op, not an error.
func (r *EnrollmentRepository) Insert(ctx context.Context, q scope.Querier, studentID, courseID string) (bool, error) {
	tag, err := q.Exec(ctx, `
		INSERT INTO enrollments (enrollment_id, student_id, course_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, course_id) DO NOTHING`,
		uuid.New().String(), studentID, courseID)
	if err != nil {
		return false, fmt.Errorf("error creating enrollment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, q scope.Querier, enrollmentID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := q.QueryRow(ctx, `
		SELECT enrollment_id, student_id, course_id
		FROM enrollments
		WHERE enrollment_id = $1`,
		enrollmentID).Scan(&enrollment.EnrollmentID, &enrollment.StudentID, &enrollment.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return &enrollment, nil
}

// UpsertGrade inserts a grade for the enrollment or overwrites the existing
// one, stamping updated_at. Last writer wins; the single statement leaves no
// window for a lost update.
func (r *EnrollmentRepository) UpsertGrade(ctx context.Context, q scope.Querier, enrollmentID, value string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO grades (grade_id, enrollment_id, grade_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (enrollment_id)
		DO UPDATE SET grade_value = EXCLUDED.grade_value, updated_at = NOW()`,
		uuid.New().String(), enrollmentID, value)
	if err != nil {
		return fmt.Errorf("error upserting grade: %w", err)
	}
	return nil
}

// UpdateGrade overwrites an existing grade addressed by (student, course).
// Unlike UpsertGrade it never inserts; a missing row is reported.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, q scope.Querier, studentID, courseID, value string) error {
	tag, err := q.Exec(ctx, `
		UPDATE grades g
		SET grade_value = $3, updated_at = NOW()
		FROM enrollments e
		WHERE g.enrollment_id = e.enrollment_id
		  AND e.student_id = $1 AND e.course_id = $2`,
		studentID, courseID, value)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// GradeSheetForLecturer returns every enrollment in the lecturer's courses
// joined with its grade, if any.
func (r *EnrollmentRepository) GradeSheetForLecturer(ctx context.Context, userID string) ([]*models.GradeSheetRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(g.grade_id::text, ''), e.enrollment_id, e.student_id, e.course_id, COALESCE(g.grade_value, '')
		FROM enrollments e
		JOIN courses c ON e.course_id = c.course_id
		JOIN lecturer_profiles lp ON c.lecturer_id = lp.lecturer_id
		LEFT JOIN grades g ON g.enrollment_id = e.enrollment_id
		WHERE lp.user_id = $1
		ORDER BY e.course_id, e.student_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing grade sheet: %w", err)
	}
	defer rows.Close()

	var sheet []*models.GradeSheetRow
	for rows.Next() {
		var row models.GradeSheetRow
		if err := rows.Scan(&row.GradeID, &row.EnrollmentID, &row.StudentID, &row.CourseID, &row.GradeValue); err != nil {
			return nil, fmt.Errorf("error scanning grade sheet row: %w", err)
		}
		sheet = append(sheet, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade sheet rows: %w", err)
	}

	return sheet, nil
}
