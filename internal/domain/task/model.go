package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	// "overdue" is accepted as a stored status for backward compatibility
	// with the dashboard aggregate counts. Date-driven overdue detection
	// lives in IsOverdue.
	TaskStatusOverdue  TaskStatus = "overdue"
	TaskStatusResolved TaskStatus = "resolved"
	TaskStatusFeedback TaskStatus = "feedback"
	TaskStatusClosed   TaskStatus = "closed"
	TaskStatusRejected TaskStatus = "rejected"
)

type TaskPriority string

const (
	TaskPriorityLow       TaskPriority = "low"
	TaskPriorityMedium    TaskPriority = "medium"
	TaskPriorityHigh      TaskPriority = "high"
	TaskPriorityUrgent    TaskPriority = "urgent"
	TaskPriorityImmediate TaskPriority = "immediate"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusOverdue, TaskStatusResolved, TaskStatusFeedback,
		TaskStatusClosed, TaskStatusRejected:
		return true
	}
	return false
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh,
		TaskPriorityUrgent, TaskPriorityImmediate:
		return true
	}
	return false
}

// statusTransitions is the explicit transition table. It is deliberately
// permissive: the terminal-ish states closed and rejected only reopen to new,
// everything else moves freely between the active states.
var statusTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusNew:        {TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue, TaskStatusResolved, TaskStatusFeedback, TaskStatusClosed, TaskStatusRejected},
	TaskStatusInProgress: {TaskStatusNew, TaskStatusCompleted, TaskStatusOverdue, TaskStatusResolved, TaskStatusFeedback, TaskStatusClosed, TaskStatusRejected},
	TaskStatusCompleted:  {TaskStatusNew, TaskStatusInProgress, TaskStatusFeedback, TaskStatusClosed},
	TaskStatusOverdue:    {TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted, TaskStatusResolved, TaskStatusFeedback, TaskStatusClosed, TaskStatusRejected},
	TaskStatusResolved:   {TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted, TaskStatusFeedback, TaskStatusClosed},
	TaskStatusFeedback:   {TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted, TaskStatusResolved, TaskStatusClosed, TaskStatusRejected},
	TaskStatusClosed:     {TaskStatusNew},
	TaskStatusRejected:   {TaskStatusNew},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Task represents a unit of work, optionally attached to a project and
// optionally nested under a parent task.
type Task struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description" gorm:"type:text"`
	Status       TaskStatus   `json:"status" gorm:"not null;default:'new';index:idx_task_status"`
	Priority     TaskPriority `json:"priority" gorm:"not null;default:'medium';index:idx_task_priority"`
	Progress     int          `json:"progress" gorm:"not null;default:0"`
	StartDate    *time.Time   `json:"start_date,omitempty"`
	DueDate      *time.Time   `json:"due_date,omitempty" gorm:"index:idx_task_due"`
	ProjectID    *uuid.UUID   `json:"project_id,omitempty" gorm:"type:uuid;index:idx_task_project"`
	AssigneeID   *uuid.UUID   `json:"assignee_id,omitempty" gorm:"type:uuid;index:idx_task_assignee"`
	ReporterID   *uuid.UUID   `json:"reporter_id,omitempty" gorm:"type:uuid"`
	ParentTaskID *uuid.UUID   `json:"parent_task_id,omitempty" gorm:"type:uuid;index:idx_task_parent"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if t.Progress < 0 || t.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

// BeforeCreate is called before inserting a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusNew
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return t.Validate()
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// IsOverdue is the date-based overdue predicate used for badges and due-date
// views. Distinct from the literal "overdue" status counted by the dashboard
// aggregates; the two can disagree.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != TaskStatusCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDueSoon reports whether the task has an incomplete status and a due date
// within [now, now+window].
func (t *Task) IsDueSoon(now time.Time, window time.Duration) bool {
	if t.Status == TaskStatusCompleted || t.DueDate == nil {
		return false
	}
	due := *t.DueDate
	return !due.Before(now) && !due.After(now.Add(window))
}
