package models

// DashboardStats summarises station activity for the dashboard.
type DashboardStats struct {
	ActivePersonnel     int     `json:"active_personnel"`
	ShiftsThisWeek      int     `json:"shifts_this_week"`
	HoursThisMonth      int     `json:"hours_this_month"`
	CoverageRate        float64 `json:"coverage_rate"`
	PendingReplacements int     `json:"pending_replacements"`
}
