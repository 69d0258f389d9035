package models

import (
	"time"
)

// User defines the principal model based on the 'users' table
type User struct {
	ID           string    `json:"id" db:"id" example:"6f1d1c3a-9b2e-4a77-8f0e-2d5a7c1b9e44"` // Opaque UUID identifier
	Email        string    `json:"email" db:"email" example:"user@campus.edu"`                // Principal's email address (stored lower-case)
	PasswordHash string    `json:"-" db:"password_hash"`                                      // One-way bcrypt digest (excluded from JSON)
	FirstName    string    `json:"firstName" db:"first_name" example:"John"`
	LastName     string    `json:"lastName" db:"last_name" example:"Doe"`
	Role         Role      `json:"role" db:"role" example:"Student"` // Immutable after registration
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}
