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

// StudentController handles student profile operations
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

func toStudentResponse(p *models.StudentProfile) dto.StudentResponse {
	return dto.StudentResponse{
		StudentID:  p.StudentID,
		UserID:     p.UserID,
		MatricNo:   p.MatricNo,
		Programme:  p.Programme,
		IntakeYear: p.IntakeYear,
		Address:    p.Address,
	}
}

// UpsertProfile creates or updates a student profile. Students may only
// save their own; administrators may target any user.
func (c *StudentController) UpsertProfile(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	var req dto.UpsertProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	targetUserID := req.UserID
	if targetUserID == "" && sess != nil {
		targetUserID = sess.UserID
	}

	if err := c.studentService.UpsertProfile(ctx.Request.Context(), sess, targetUserID, req.Programme, req.NationalID, req.Address); err != nil {
		c.logger.Warn().Err(err).Str("targetUserId", targetUserID).Msg("Failed to save student profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Profile saved"))
}

// GetProfile returns the session user's own student profile
func (c *StudentController) GetProfile(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	profile, err := c.studentService.GetOwnProfile(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toStudentResponse(profile), ""))
}

// GetStudents lists student profiles visible to the session
func (c *StudentController) GetStudents(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	students, err := c.studentService.GetStudents(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		responses = append(responses, toStudentResponse(s))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses, ""))
}

// DeleteStudent removes a student and their owning user account
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)
	studentID := ctx.Param("id")

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), sess, studentID); err != nil {
		c.logger.Warn().Err(err).Str("studentId", studentID).Msg("Failed to delete student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student deleted"))
}
