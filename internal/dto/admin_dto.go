package dto

import "time"

// --- Review Settings ---

type ReviewSettingsResponse struct {
	DeadlineHours int       `json:"deadline_hours"`
	AutoAction    string    `json:"auto_action"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UpdateReviewSettingsRequest struct {
	DeadlineHours int    `json:"deadline_hours" validate:"required,gte=1,lte=720"`
	AutoAction    string `json:"auto_action" validate:"required,oneof=none approve reject"`
}

// --- Role Change Statistics ---

type RoleChangeStatisticsResponse struct {
	PeriodDays     int              `json:"period_days"`
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	ApprovalRate   float64          `json:"approval_rate"`
	AvgReviewHours float64          `json:"avg_review_hours"`
	LateCount      int64            `json:"late_count"`
	DailyBreakdown []DailyCount     `json:"daily_breakdown"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// --- Dashboard ---

type DashboardResponse struct {
	PendingRoleChanges    int64            `json:"pending_role_changes"`
	PendingCertifications int64            `json:"pending_certifications"`
	LateReviews           int64            `json:"late_reviews"`
	ActiveMandates        int64            `json:"active_mandates"`
	ExpiringMandates      int64            `json:"expiring_mandates"`
	TotalUsers            int64            `json:"total_users"`
	UsersByRole           map[string]int64 `json:"users_by_role"`
}

// --- Server Logs ---

type AdminLogEntry struct {
	Id        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Module    string `json:"module"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}
