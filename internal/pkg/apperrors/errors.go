package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors. ErrInvalidCredentials is returned for both an
	// unknown email and a wrong password so the two cases cannot be told
	// apart by a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrSessionRequired    = errors.New("session required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidRole      = errors.New("invalid role")

	// Infrastructure errors
	ErrStoreUnavailable = errors.New("store unavailable")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Profile errors
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrLecturerNotFound = errors.New("lecturer not found")
	ErrMatricNoExists   = errors.New("matric number already exists")
)

// Course and enrollment errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrGradeNotFound      = errors.New("grade not found")
)
