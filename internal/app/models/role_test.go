package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"Admin", "Lecturer", "Student"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, Role(raw), role)
		assert.True(t, role.Valid())
	}

	for _, raw := range []string{"", "admin", "ADMIN", "Registrar", "Student "} {
		_, err := ParseRole(raw)
		assert.Error(t, err, "role %q should be rejected", raw)
	}
}

func TestParseAuditAction(t *testing.T) {
	known := []string{
		"RegisterUser", "Login", "Logout", "UpsertProfile",
		"CreateCourse", "DeleteCourse", "DeleteStudent",
		"DeleteLecturer", "EnrollStudent", "UpsertGrade",
	}
	for _, raw := range known {
		action, err := ParseAuditAction(raw)
		require.NoError(t, err)
		assert.Equal(t, AuditAction(raw), action)
	}

	for _, raw := range []string{"", "createcourse", "DropTable", "Enroll"} {
		_, err := ParseAuditAction(raw)
		assert.Error(t, err, "action %q should be rejected", raw)
	}
}
