package handlers

import (
	"net/http"
	"strconv"

	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityHandler serves the activity feed, joining user and task summaries
// onto the raw log entries.
type ActivityHandler struct {
	activities activity.Service
	users      user.Service
	tasks      task.Service
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(activities activity.Service, users user.Service, tasks task.Service) *ActivityHandler {
	return &ActivityHandler{activities: activities, users: users, tasks: tasks}
}

// GetRecent backs GET /api/activities/recent?limit=N.
func (h *ActivityHandler) GetRecent(c *gin.Context) {
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.activities.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.enrich(c, entries)})
}

// ListByUser backs GET /api/activities?userId=.
func (h *ActivityHandler) ListByUser(c *gin.Context) {
	filter := activity.ActivityFilter{}
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		filter.UserID = &userID
	}

	entries, err := h.activities.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.enrich(c, entries)})
}

// enrich joins user and task summaries onto the entries. References to rows
// deleted since the entry was written are simply left out.
func (h *ActivityHandler) enrich(c *gin.Context, entries []activity.Activity) []dto.ActivityResponse {
	ctx := c.Request.Context()
	userCache := make(map[uuid.UUID]*dto.UserSummary)
	taskCache := make(map[uuid.UUID]*dto.TaskSummary)

	responses := make([]dto.ActivityResponse, 0, len(entries))
	for i := range entries {
		resp := *ActivityToResponse(&entries[i])

		if entries[i].UserID != nil {
			id := *entries[i].UserID
			if _, seen := userCache[id]; !seen {
				if u, err := h.users.GetUser(ctx, id); err == nil {
					userCache[id] = UserToSummary(u)
				} else {
					userCache[id] = nil
				}
			}
			resp.User = userCache[id]
		}
		if entries[i].TaskID != nil {
			id := *entries[i].TaskID
			if _, seen := taskCache[id]; !seen {
				if t, err := h.tasks.GetTask(ctx, id); err == nil {
					taskCache[id] = TaskToSummary(t)
				} else {
					taskCache[id] = nil
				}
			}
			resp.Task = taskCache[id]
		}

		responses = append(responses, resp)
	}
	return responses
}
