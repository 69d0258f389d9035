package dto

import "time"

// AuditLogResponse is the read representation of one audit trail entry
type AuditLogResponse struct {
	LogID        string    `json:"logId"`
	ActorRole    string    `json:"actorRole" example:"Admin"`
	ActorUserID  string    `json:"actorUserId"`
	Action       string    `json:"action" example:"CreateCourse"`
	TargetEntity string    `json:"targetEntity" example:"CS101"`
	Status       string    `json:"status" example:"Success"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// AdminStatsResponse aggregates headline counts for the admin dashboard
type AdminStatsResponse struct {
	TotalUsers     int `json:"totalUsers"`
	TotalStudents  int `json:"totalStudents"`
	TotalLecturers int `json:"totalLecturers"`
	TotalCourses   int `json:"totalCourses"`
}
