package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models"
	"github.com/securecampus/campuscore/internal/app/models/dto"
	"github.com/securecampus/campuscore/internal/app/services"
	"github.com/securecampus/campuscore/internal/middleware"
)

// LecturerController handles lecturer profile operations
type LecturerController struct {
	lecturerService *services.LecturerService
	logger          zerolog.Logger
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService *services.LecturerService, logger zerolog.Logger) *LecturerController {
	return &LecturerController{
		lecturerService: lecturerService,
		logger:          logger,
	}
}

func toLecturerResponse(p *models.LecturerProfile) dto.LecturerResponse {
	return dto.LecturerResponse{
		LecturerID: p.LecturerID,
		UserID:     p.UserID,
		StaffNo:    p.StaffNo,
		Department: p.Department,
	}
}

// CreateLecturer provisions a lecturer profile for an existing user
func (c *LecturerController) CreateLecturer(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	var req dto.CreateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.lecturerService.CreateLecturerProfile(ctx.Request.Context(), sess, req.UserID); err != nil {
		c.logger.Warn().Err(err).Str("userId", req.UserID).Msg("Failed to create lecturer profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(nil, "Lecturer profile created"))
}

// GetLecturers lists all lecturer profiles
func (c *LecturerController) GetLecturers(ctx *gin.Context) {
	lecturers, err := c.lecturerService.GetLecturers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.LecturerResponse, 0, len(lecturers))
	for _, l := range lecturers {
		responses = append(responses, toLecturerResponse(l))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses, ""))
}

// DeleteLecturer removes a lecturer and their owning user account
func (c *LecturerController) DeleteLecturer(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)
	lecturerID := ctx.Param("id")

	if err := c.lecturerService.DeleteLecturer(ctx.Request.Context(), sess, lecturerID); err != nil {
		c.logger.Warn().Err(err).Str("lecturerId", lecturerID).Msg("Failed to delete lecturer")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Lecturer deleted"))
}
