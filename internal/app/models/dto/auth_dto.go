package dto

import "time"

// RegisterRequest is the registration payload. Role must be one of the
// closed role values; it is re-validated by the service.
type RegisterRequest struct {
	Role      string `json:"role" binding:"required" example:"Student"`
	FirstName string `json:"firstName" binding:"required" example:"John"`
	LastName  string `json:"lastName" binding:"required" example:"Doe"`
	Email     string `json:"email" binding:"required,email" example:"john.doe@campus.edu"`
	Password  string `json:"password" binding:"required,min=8" example:"Passw0rd123"`
}

// LoginRequest is the authentication payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john.doe@campus.edu"`
	Password string `json:"password" binding:"required" example:"Passw0rd123"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType" example:"Bearer"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role" example:"Student"`
}

// RegisterResponse confirms a created principal
type RegisterResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
