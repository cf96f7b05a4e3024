package types

type DashboardCountByGroup struct {
	Key   string `json:"key" db:"key"`
	Label string `json:"label,omitempty" db:"label"`
	Count int64  `json:"count" db:"count"`
}

type DashboardMonth struct {
	Month     string `json:"month" db:"month"`
	Total     int64  `json:"total" db:"total"`
	Completed int64  `json:"completed" db:"completed"`
}

type DashboardStats struct {
	TotalRequests      int64                   `json:"total_requests"`
	PendingRequests    int64                   `json:"pending_requests"`
	CompletedRequests  int64                   `json:"completed_requests"`
	RejectedRequests   int64                   `json:"rejected_requests"`
	PendingForUser     int64                   `json:"pending_for_user"`
	TotalUsers         int64                   `json:"total_users"`
	RequestsByType     []DashboardCountByGroup `json:"requests_by_type"`
	RequestsByProvince []DashboardCountByGroup `json:"requests_by_province"`
	RequestsByStatus   []DashboardCountByGroup `json:"requests_by_status"`
	Monthly            []DashboardMonth        `json:"monthly"`
	UsersByRole        []DashboardCountByGroup `json:"users_by_role"`
}
