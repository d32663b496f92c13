package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title        string     `json:"title" binding:"required" validate:"required,min=1,max=255"`
	Description  string     `json:"description" validate:"max=5000"`
	Status       string     `json:"status" validate:"omitempty"`
	Priority     string     `json:"priority" validate:"omitempty"`
	Progress     int        `json:"progress" validate:"min=0,max=100"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ProjectID    *uuid.UUID `json:"projectId,omitempty"`
	AssigneeID   *uuid.UUID `json:"assigneeId,omitempty"`
	ReporterID   *uuid.UUID `json:"reporterId,omitempty"`
	ParentTaskID *uuid.UUID `json:"parentTaskId,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task
type UpdateTaskRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status       *string    `json:"status,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	Progress     *int       `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ProjectID    *uuid.UUID `json:"projectId,omitempty"`
	AssigneeID   *uuid.UUID `json:"assigneeId,omitempty"`
	ReporterID   *uuid.UUID `json:"reporterId,omitempty"`
	ParentTaskID *uuid.UUID `json:"parentTaskId,omitempty"`
}

// UpdateTaskStatusRequest is the body of PATCH /api/tasks/:id/status.
type UpdateTaskStatusRequest struct {
	Status string     `json:"status" binding:"required" validate:"required"`
	UserID *uuid.UUID `json:"userId,omitempty"`
}

// AddCommentRequest is the body of POST /api/tasks/:id/comments.
type AddCommentRequest struct {
	Body   string     `json:"body" binding:"required" validate:"required,max=5000"`
	UserID *uuid.UUID `json:"userId,omitempty"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Progress     int        `json:"progress"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ProjectID    *uuid.UUID `json:"projectId,omitempty"`
	AssigneeID   *uuid.UUID `json:"assigneeId,omitempty"`
	ReporterID   *uuid.UUID `json:"reporterId,omitempty"`
	ParentTaskID *uuid.UUID `json:"parentTaskId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	// Overdue is the date-based badge, not the stored status.
	Overdue bool `json:"overdue"`
}

// TaskSummary is the short form embedded in enriched responses.
type TaskSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
}

// DueSoonTaskResponse is a due-soon task enriched with its assignee.
type DueSoonTaskResponse struct {
	TaskResponse
	Assignee *UserSummary `json:"assignee,omitempty"`
}
