package dto

// AddCourseRequest is the course creation payload
type AddCourseRequest struct {
	CourseCode string  `json:"courseCode" binding:"required" example:"CS101"`
	CourseName string  `json:"courseName" binding:"required" example:"Introduction to Computing"`
	LecturerID *string `json:"lecturerId,omitempty"`
}

// CourseResponse is the read representation of a course
type CourseResponse struct {
	CourseID   string  `json:"courseId"`
	CourseCode string  `json:"courseCode"`
	CourseName string  `json:"courseName"`
	LecturerID *string `json:"lecturerId,omitempty"`
}
