package models

import (
	"fmt"
	"time"
)

// AuditAction defines the closed set of privileged actions recorded in the
// audit trail.
type AuditAction string

const (
	ActionRegisterUser   AuditAction = "RegisterUser"
	ActionLogin          AuditAction = "Login"
	ActionLogout         AuditAction = "Logout"
	ActionUpsertProfile  AuditAction = "UpsertProfile"
	ActionCreateCourse   AuditAction = "CreateCourse"
	ActionDeleteCourse   AuditAction = "DeleteCourse"
	ActionDeleteStudent  AuditAction = "DeleteStudent"
	ActionDeleteLecturer AuditAction = "DeleteLecturer"
	ActionEnrollStudent  AuditAction = "EnrollStudent"
	ActionUpsertGrade    AuditAction = "UpsertGrade"
)

// ParseAuditAction validates a raw action string against the closed enum.
func ParseAuditAction(raw string) (AuditAction, error) {
	switch AuditAction(raw) {
	case ActionRegisterUser, ActionLogin, ActionLogout, ActionUpsertProfile,
		ActionCreateCourse, ActionDeleteCourse, ActionDeleteStudent,
		ActionDeleteLecturer, ActionEnrollStudent, ActionUpsertGrade:
		return AuditAction(raw), nil
	}
	return "", fmt.Errorf("unknown audit action %q", raw)
}

// AuditStatus is the recorded outcome of a privileged action.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "Success"
	AuditFailure AuditStatus = "Failure"
)

// AuditLogEntry defines one immutable record in the 'audit_logs' table.
// Rows are only ever inserted; no update or delete path exists anywhere in
// the codebase.
type AuditLogEntry struct {
	LogID        string      `json:"logId" db:"log_id"`
	Timestamp    time.Time   `json:"timestamp" db:"occurred_at"` // Server-assigned
	ActorRole    Role        `json:"actorRole" db:"actor_role"`
	ActorUserID  string      `json:"actorUserId" db:"actor_user_id"`
	Action       AuditAction `json:"action" db:"action"`
	TargetEntity string      `json:"targetEntity" db:"target_entity"`
	Status       AuditStatus `json:"status" db:"status"`
}
