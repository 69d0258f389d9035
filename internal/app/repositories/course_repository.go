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
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Insert creates a new course inside the given transaction
func (r *CourseRepository) Insert(ctx context.Context, q scope.Querier, course *models.Course) error {
	_, err := q.Exec(ctx, `
		INSERT INTO courses (course_id, course_code, course_name, lecturer_id)
		VALUES ($1, $2, $3, $4)`,
		course.CourseID, course.CourseCode, course.CourseName, course.LecturerID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// Delete removes a course inside the given transaction
func (r *CourseRepository) Delete(ctx context.Context, q scope.Querier, courseID string) error {
	tag, err := q.Exec(ctx, `DELETE FROM courses WHERE course_id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx, `
		SELECT course_id, course_code, course_name, lecturer_id
		FROM courses
		WHERE course_id = $1`,
		courseID).Scan(&course.CourseID, &course.CourseCode, &course.CourseName, &course.LecturerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// List returns all courses
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course_id, course_code, course_name, lecturer_id
		FROM courses
		ORDER BY course_code`)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ListByLecturerUser returns the courses owned by the lecturer profile bound
// to the given user ID.
func (r *CourseRepository) ListByLecturerUser(ctx context.Context, userID string) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.course_id, c.course_code, c.course_name, c.lecturer_id
		FROM courses c
		JOIN lecturer_profiles lp ON c.lecturer_id = lp.lecturer_id
		WHERE lp.user_id = $1
		ORDER BY c.course_code`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturer courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ListByStudentUser returns the courses the student profile bound to the
// given user ID is enrolled in. The join crosses student_profiles, so it has
// to run through a scoped Querier for the row policy to admit the row.
func (r *CourseRepository) ListByStudentUser(ctx context.Context, q scope.Querier, userID string) ([]*models.Course, error) {
	rows, err := q.Query(ctx, `
		SELECT c.course_id, c.course_code, c.course_name, c.lecturer_id
		FROM student_profiles sp
		JOIN enrollments e ON sp.student_id = e.student_id
		JOIN courses c ON e.course_id = c.course_id
		WHERE sp.user_id = $1
		ORDER BY c.course_code`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing student courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.CourseID, &course.CourseCode, &course.CourseName, &course.LecturerID); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
