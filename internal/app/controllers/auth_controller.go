// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models/dto"
	"github.com/securecampus/campuscore/internal/app/services"
	"github.com/securecampus/campuscore/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req.Role, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to register user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("userId", user.ID).
		Str("role", string(user.Role)).
		Msg("User registered")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, "User registered successfully"))
}

// Login handles user authentication and session token issuance
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Log without distinguishing unknown email from wrong password.
		c.logger.Warn().Err(err).Msg("Login attempt failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.LoginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.ExpiresAt,
		UserID:    result.User.ID,
		Role:      string(result.User.Role),
	}, "Login successful"))
}

// Logout revokes the current session
func (c *AuthController) Logout(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	if err := c.authService.Logout(ctx.Request.Context(), sess); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to log out")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Logged out"))
}
