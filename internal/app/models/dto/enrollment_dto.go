package dto

// EnrollRequest enrolls a student in one of the session lecturer's courses
type EnrollRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
}

// UpsertGradeRequest records a grade keyed by enrollment
type UpsertGradeRequest struct {
	EnrollmentID string `json:"enrollmentId" binding:"required"`
	GradeValue   string `json:"gradeValue" binding:"required" example:"A-"`
}

// UpdateGradeRequest overwrites an existing grade keyed by student and
// course
type UpdateGradeRequest struct {
	StudentID  string `json:"studentId" binding:"required"`
	CourseID   string `json:"courseId" binding:"required"`
	GradeValue string `json:"gradeValue" binding:"required" example:"B+"`
}
