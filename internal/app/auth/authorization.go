package auth

import (
	"context"
	"fmt"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/apperrors"
)

// CourseOwnershipChecker answers whether a lecturer user owns a course.
type CourseOwnershipChecker interface {
	OwnsCourse(ctx context.Context, q scope.Querier, userID, courseID string) (bool, error)
}

// AuthorizationService performs role and ownership checks. Every check runs
// before the mutation it guards; a failed check must leave no side effects.
type AuthorizationService struct {
	ownership CourseOwnershipChecker
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(ownership CourseOwnershipChecker) *AuthorizationService {
	return &AuthorizationService{ownership: ownership}
}

// RequireRole validates that the session carries the expected role
func (s *AuthorizationService) RequireRole(sess *scope.Session, role models.Role) error {
	if sess == nil || sess.Role != role {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequireAdmin validates that the session belongs to an administrator
func (s *AuthorizationService) RequireAdmin(sess *scope.Session) error {
	return s.RequireRole(sess, models.RoleAdmin)
}

// RequireSelfOrAdmin validates that the session acts on its own records or
// is an administrator.
func (s *AuthorizationService) RequireSelfOrAdmin(sess *scope.Session, userID string) error {
	if sess == nil {
		return apperrors.ErrPermissionDenied
	}
	if sess.UserID == userID || sess.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// ValidateCourseOwnership validates that the session is a lecturer owning
// the given course.
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, q scope.Querier, sess *scope.Session, courseID string) error {
	if err := s.RequireRole(sess, models.RoleLecturer); err != nil {
		return err
	}

	owns, err := s.ownership.OwnsCourse(ctx, q, sess.UserID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check course ownership: %w", err)
	}
	if !owns {
		return apperrors.ErrPermissionDenied
	}

	return nil
}
