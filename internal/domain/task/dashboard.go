package task

import (
	"context"
	"sort"
	"time"
)

// DueSoonWindow is how far ahead the due-soon view looks.
const DueSoonWindow = 7 * 24 * time.Hour

// DashboardStats is the aggregate snapshot behind GET /api/dashboard/stats.
// Overdue counts the literal stored status, not the date predicate; the two
// intentionally disagree for tasks past their due date in another status.
type DashboardStats struct {
	Total      int `json:"total"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// CountTasksByStatus recomputes the dashboard aggregates over the full task
// set. Nothing is maintained incrementally.
func (s *service) CountTasksByStatus(ctx context.Context) (DashboardStats, error) {
	tasks, err := s.repo.FindAll(ctx, TaskFilter{})
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusInProgress:
			stats.InProgress++
		case TaskStatusCompleted:
			stats.Completed++
		case TaskStatusOverdue:
			stats.Overdue++
		}
	}
	return stats, nil
}

// DueSoonTasks returns incomplete tasks due within the next seven days,
// ascending by due date. The stable sort keeps insertion order on ties.
func (s *service) DueSoonTasks(ctx context.Context, now time.Time) ([]Task, error) {
	tasks, err := s.repo.FindAll(ctx, TaskFilter{})
	if err != nil {
		return nil, err
	}

	dueSoon := make([]Task, 0)
	for _, t := range tasks {
		if t.IsDueSoon(now, DueSoonWindow) {
			dueSoon = append(dueSoon, t)
		}
	}

	sort.SliceStable(dueSoon, func(i, j int) bool {
		return dueSoon[i].DueDate.Before(*dueSoon[j].DueDate)
	})

	return dueSoon, nil
}
