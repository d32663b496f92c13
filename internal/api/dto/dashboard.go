package dto

// DashboardStatsResponse is the body of GET /api/dashboard/stats. Overdue is
// the count of tasks stored with the overdue status.
type DashboardStatsResponse struct {
	Total      int `json:"total"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}
