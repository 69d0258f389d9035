package dto

// CreateLecturerRequest provisions a lecturer profile for an existing user
type CreateLecturerRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// LecturerResponse is the read representation of a lecturer profile
type LecturerResponse struct {
	LecturerID string `json:"lecturerId"`
	UserID     string `json:"userId"`
	StaffNo    string `json:"staffNo"`
	Department string `json:"department"`
}
