package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories combines all repositories used by the application
type Repositories struct {
	UserRepository       *UserRepository
	StudentRepository    *StudentRepository
	LecturerRepository   *LecturerRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	AuditRepository      *AuditRepository
	SessionRepository    *SessionRepository
	StatsRepository      *StatsRepository
}

// NewRepositories creates all repositories with a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		LecturerRepository:   NewLecturerRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		AuditRepository:      NewAuditRepository(db),
		SessionRepository:    NewSessionRepository(db),
		StatsRepository:      NewStatsRepository(db),
	}
}
