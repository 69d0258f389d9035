package models

// AdminStats holds the dashboard totals visible to administrators.
type AdminStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalStudents  int `json:"totalStudents"`
	TotalLecturers int `json:"totalLecturers"`
	TotalCourses   int `json:"totalCourses"`
}
