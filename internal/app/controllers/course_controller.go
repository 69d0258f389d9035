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

// CourseController handles course catalogue operations
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

func toCourseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		CourseID:   course.CourseID,
		CourseCode: course.CourseCode,
		CourseName: course.CourseName,
		LecturerID: course.LecturerID,
	}
}

func toCourseResponses(courses []*models.Course) []dto.CourseResponse {
	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, toCourseResponse(course))
	}
	return responses
}

// AddCourse creates a course in the catalogue
func (c *CourseController) AddCourse(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	var req dto.AddCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.AddCourse(ctx.Request.Context(), sess, req.CourseCode, req.CourseName, req.LecturerID)
	if err != nil {
		c.logger.Warn().Err(err).Str("courseCode", req.CourseCode).Msg("Failed to add course")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toCourseResponse(course), "Course created"))
}

// DeleteCourse removes a course from the catalogue
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)
	courseID := ctx.Param("id")

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), sess, courseID); err != nil {
		c.logger.Warn().Err(err).Str("courseId", courseID).Msg("Failed to delete course")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course deleted"))
}

// GetCourses lists the whole course catalogue
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCourseResponses(courses), ""))
}

// GetOwnCourses lists the courses assigned to the session lecturer
func (c *CourseController) GetOwnCourses(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	courses, err := c.courseService.GetOwnCourses(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCourseResponses(courses), ""))
}

// GetEnrolledCourses lists the courses the session student is enrolled in
func (c *CourseController) GetEnrolledCourses(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	courses, err := c.courseService.GetEnrolledCourses(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCourseResponses(courses), ""))
}
