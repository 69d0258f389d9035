package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/models/dto"
	"github.com/securecampus/campuscore/internal/app/repositories"
	"github.com/securecampus/campuscore/internal/app/scope"
	"github.com/securecampus/campuscore/internal/pkg/auth"
)

// SessionContextKey is the gin context key holding the authenticated session
const SessionContextKey = "session"

// AuthMiddleware authenticates requests and binds the resulting session
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	sessionRepo *repositories.SessionRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessionRepo *repositories.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
	}
}

// JWTAuth validates the bearer token, checks the session has not been
// revoked and stores a scope.Session in the gin context. Requests without
// a valid, live session never reach the handlers.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			message := "Authentication failed"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				message = "Token has expired"
			}
			errorDetail := dto.NewErrorDetail(errorCode, message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		// Logout revokes the backing session row, so a syntactically valid
		// token alone is not enough.
		if err := m.sessionRepo.Validate(c.Request.Context(), claims.ID); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Session is no longer valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		role, err := models.ParseRole(claims.Role)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(SessionContextKey, &scope.Session{
			UserID:  claims.UserID,
			Role:    role,
			TokenID: claims.ID,
		})

		c.Next()
	}
}

// SessionFromContext returns the session bound by JWTAuth, or nil when the
// request was not authenticated.
func SessionFromContext(c *gin.Context) *scope.Session {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*scope.Session)
	if !ok {
		return nil
	}
	return sess
}
