package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/securecampus/campuscore/internal/app/controllers"
	"github.com/securecampus/campuscore/internal/app/models/dto"
	"github.com/securecampus/campuscore/internal/middleware"
)

// SetupRouter configures all application routes. Role checks live in the
// service layer next to the data access they guard; routing only separates
// the public surface from the authenticated one.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	lecturerController *controllers.LecturerController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetStudents)
			students.GET("/me", studentController.GetProfile)
			students.PUT("/profile", studentController.UpsertProfile)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		// Lecturer routes
		lecturers := authenticated.Group("/lecturers")
		{
			lecturers.GET("", lecturerController.GetLecturers)
			lecturers.POST("", lecturerController.CreateLecturer)
			lecturers.DELETE("/:id", lecturerController.DeleteLecturer)
		}

		// Course routes
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetCourses)
			courses.GET("/mine", courseController.GetOwnCourses)
			courses.GET("/enrolled", courseController.GetEnrolledCourses)
			courses.POST("", courseController.AddCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		// Enrollment and grading routes
		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", enrollmentController.EnrollStudent)
			enrollments.GET("/grade-sheet", enrollmentController.GetGradeSheet)
			enrollments.PUT("/grades", enrollmentController.UpsertGrade)
			enrollments.PATCH("/grades", enrollmentController.UpdateGrade)
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/audit-logs", adminController.GetAuditLogs)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
