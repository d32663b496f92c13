package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivityResponse is one activity-feed entry enriched with joined summaries.
type ActivityResponse struct {
	ID          uuid.UUID    `json:"id"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	UserID      *uuid.UUID   `json:"userId,omitempty"`
	TaskID      *uuid.UUID   `json:"taskId,omitempty"`
	ProjectID   *uuid.UUID   `json:"projectId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	User        *UserSummary `json:"user,omitempty"`
	Task        *TaskSummary `json:"task,omitempty"`
}
