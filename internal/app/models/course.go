package models

// Course defines the course model based on the 'courses' table
type Course struct {
	CourseID   string  `json:"courseId" db:"course_id"`
	CourseCode string  `json:"courseCode" db:"course_code"`
	CourseName string  `json:"courseName" db:"course_name"`
	LecturerID *string `json:"lecturerId,omitempty" db:"lecturer_id"` // Nullable ownership reference
}
