package handlers

import (
	"net/http"
	"time"

	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DashboardHandler aggregates task data for the dashboard widgets.
type DashboardHandler struct {
	tasks task.Service
	users user.Service
	now   func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(tasks task.Service, users user.Service) *DashboardHandler {
	return &DashboardHandler{tasks: tasks, users: users, now: time.Now}
}

// GetStats backs GET /api/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.tasks.CountTasksByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.DashboardStatsResponse{
		Total:      stats.Total,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Overdue:    stats.Overdue,
	}})
}

// GetDueSoon backs GET /api/dashboard/due-soon.
func (h *DashboardHandler) GetDueSoon(c *gin.Context) {
	now := h.now()
	tasks, err := h.tasks.DueSoonTasks(c.Request.Context(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	assigneeCache := make(map[uuid.UUID]*dto.UserSummary)

	responses := make([]dto.DueSoonTaskResponse, 0, len(tasks))
	for i := range tasks {
		resp := dto.DueSoonTaskResponse{TaskResponse: *TaskToResponse(&tasks[i], now)}
		if tasks[i].AssigneeID != nil {
			id := *tasks[i].AssigneeID
			if _, seen := assigneeCache[id]; !seen {
				if u, err := h.users.GetUser(ctx, id); err == nil {
					assigneeCache[id] = UserToSummary(u)
				} else {
					assigneeCache[id] = nil
				}
			}
			resp.Assignee = assigneeCache[id]
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}
