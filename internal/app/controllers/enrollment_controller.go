package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models/dto"
	"github.com/securecampus/campuscore/internal/app/services"
	"github.com/securecampus/campuscore/internal/middleware"
)

// EnrollmentController handles enrollment and grading operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// EnrollStudent enrolls a student in one of the session lecturer's courses.
// Enrolling an already-enrolled student succeeds without effect.
func (c *EnrollmentController) EnrollStudent(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.EnrollStudent(ctx.Request.Context(), sess, req.CourseID, req.StudentID); err != nil {
		c.logger.Warn().Err(err).
			Str("courseId", req.CourseID).
			Str("studentId", req.StudentID).
			Msg("Failed to enroll student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student enrolled"))
}

// UpsertGrade records or overwrites a grade for an enrollment
func (c *EnrollmentController) UpsertGrade(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	var req dto.UpsertGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.UpsertGrade(ctx.Request.Context(), sess, req.EnrollmentID, req.GradeValue); err != nil {
		c.logger.Warn().Err(err).Str("enrollmentId", req.EnrollmentID).Msg("Failed to save grade")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Grade saved"))
}

// UpdateGrade overwrites an existing grade located by student and course
func (c *EnrollmentController) UpdateGrade(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.UpdateGrade(ctx.Request.Context(), sess, req.StudentID, req.CourseID, req.GradeValue); err != nil {
		c.logger.Warn().Err(err).
			Str("studentId", req.StudentID).
			Str("courseId", req.CourseID).
			Msg("Failed to update grade")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Grade updated"))
}

// GetGradeSheet returns the grade sheet for the session lecturer's courses
func (c *EnrollmentController) GetGradeSheet(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	rows, err := c.enrollmentService.GetGradeSheet(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rows, ""))
}
