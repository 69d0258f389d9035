package dto

// UpsertProfileRequest is the student profile save payload. The national ID
// is accepted here as input only; no response DTO ever carries it back.
type UpsertProfileRequest struct {
	UserID     string `json:"userId,omitempty"` // Admin may act on another user; defaults to the session user
	Programme  string `json:"programme" binding:"required" example:"Software Engineering"`
	NationalID string `json:"nationalId" binding:"required" example:"990101-14-5678"`
	Address    string `json:"address" example:"12 College Green"`
}

// StudentResponse is the read representation of a student profile. It has no
// national ID field in any form, encrypted or otherwise.
type StudentResponse struct {
	StudentID  string `json:"studentId"`
	UserID     string `json:"userId"`
	MatricNo   string `json:"matricNo"`
	Programme  string `json:"programme"`
	IntakeYear int    `json:"intakeYear"`
	Address    string `json:"address"`
}
