package models

// LecturerProfile defines the lecturer model based on the 'lecturer_profiles' table.
// Created by the system as a side effect of lecturer registration, never by a
// caller directly.
type LecturerProfile struct {
	LecturerID string `json:"lecturerId" db:"lecturer_id"`
	UserID     string `json:"userId" db:"user_id"`
	StaffNo    string `json:"staffNo" db:"staff_no"` // Derived from the user ID suffix
	Department string `json:"department" db:"department"`
	User       *User  `json:"user,omitempty"` // Relation, no db tag
}
