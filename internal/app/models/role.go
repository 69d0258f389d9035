package models

import "fmt"

// Role defines the closed set of principal roles. Role values arrive as
// strings at the API boundary and must pass ParseRole before they are
// trusted anywhere else.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleLecturer Role = "Lecturer"
	RoleStudent  Role = "Student"
)

// ParseRole validates a raw role string against the closed enum.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return Role(raw), nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
