package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securecampus/campuscore/internal/app/models"
)

// StatsRepository computes admin dashboard totals
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Totals returns the current record counts
func (r *StatsRepository) Totals(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM student_profiles),
			(SELECT COUNT(*) FROM lecturer_profiles),
			(SELECT COUNT(*) FROM courses)`).
		Scan(&stats.TotalUsers, &stats.TotalStudents, &stats.TotalLecturers, &stats.TotalCourses)
	if err != nil {
		return nil, fmt.Errorf("error computing admin stats: %w", err)
	}
	return &stats, nil
}
