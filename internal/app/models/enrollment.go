package models

import "time"

// Enrollment defines the enrollment model based on the 'enrollments' table.
// At most one row exists per (StudentID, CourseID) pair, enforced by a store
// level unique constraint.
type Enrollment struct {
	EnrollmentID string `json:"enrollmentId" db:"enrollment_id"`
	StudentID    string `json:"studentId" db:"student_id"`
	CourseID     string `json:"courseId" db:"course_id"`
}

// Grade defines the grade model based on the 'grades' table, keyed 1:1 by
// enrollment.
type Grade struct {
	GradeID      string     `json:"gradeId" db:"grade_id"`
	EnrollmentID string     `json:"enrollmentId" db:"enrollment_id"`
	GradeValue   string     `json:"gradeValue" db:"grade_value"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// GradeSheetRow is the lecturer-facing join of enrollments with their grades.
type GradeSheetRow struct {
	GradeID      string `json:"gradeId"`
	EnrollmentID string `json:"enrollmentId"`
	StudentID    string `json:"studentId"`
	CourseID     string `json:"courseId"`
	GradeValue   string `json:"gradeValue"`
}
