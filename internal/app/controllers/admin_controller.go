package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securecampus/campuscore/internal/app/models/dto"
	"github.com/securecampus/campuscore/internal/app/services"
	"github.com/securecampus/campuscore/internal/middleware"
)

// AdminController handles administrator dashboard operations
type AdminController struct {
	adminService *services.AdminService
	auditService *services.AuditService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, auditService *services.AuditService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		auditService: auditService,
		logger:       logger,
	}
}

// GetStats returns the admin dashboard totals
func (c *AdminController) GetStats(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	stats, err := c.adminService.GetStats(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AdminStatsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalStudents:  stats.TotalStudents,
		TotalLecturers: stats.TotalLecturers,
		TotalCourses:   stats.TotalCourses,
	}, ""))
}

// GetAuditLogs returns the audit trail, most recent first
func (c *AdminController) GetAuditLogs(ctx *gin.Context) {
	sess := middleware.SessionFromContext(ctx)

	entries, err := c.auditService.List(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, dto.AuditLogResponse{
			LogID:        e.LogID,
			ActorRole:    string(e.ActorRole),
			ActorUserID:  e.ActorUserID,
			Action:       string(e.Action),
			TargetEntity: e.TargetEntity,
			Status:       string(e.Status),
			OccurredAt:   e.Timestamp,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses, ""))
}
