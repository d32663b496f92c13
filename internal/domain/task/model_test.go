package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{"new to in-progress", TaskStatusNew, TaskStatusInProgress, true},
		{"new to completed", TaskStatusNew, TaskStatusCompleted, true},
		{"in-progress to completed", TaskStatusInProgress, TaskStatusCompleted, true},
		{"completed reopens to in-progress", TaskStatusCompleted, TaskStatusInProgress, true},
		{"completed cannot jump to rejected", TaskStatusCompleted, TaskStatusRejected, false},
		{"closed only reopens to new", TaskStatusClosed, TaskStatusNew, true},
		{"closed cannot go to in-progress", TaskStatusClosed, TaskStatusInProgress, false},
		{"closed cannot go to completed", TaskStatusClosed, TaskStatusCompleted, false},
		{"rejected only reopens to new", TaskStatusRejected, TaskStatusNew, true},
		{"rejected cannot go to resolved", TaskStatusRejected, TaskStatusResolved, false},
		{"same status is a no-op", TaskStatusClosed, TaskStatusClosed, true},
		{"overdue to resolved", TaskStatusOverdue, TaskStatusResolved, true},
		{"resolved cannot go to rejected", TaskStatusResolved, TaskStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTaskValidate(t *testing.T) {
	base := func() *Task {
		return &Task{
			Title:    "Write report",
			Status:   TaskStatusNew,
			Priority: TaskPriorityMedium,
			Progress: 50,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{"valid task", func(*Task) {}, nil},
		{"empty title", func(tk *Task) { tk.Title = "" }, ErrInvalidInput},
		{"unknown status", func(tk *Task) { tk.Status = "someday" }, ErrInvalidStatus},
		{"unknown priority", func(tk *Task) { tk.Priority = "asap" }, ErrInvalidPriority},
		{"progress below range", func(tk *Task) { tk.Progress = -1 }, ErrInvalidProgress},
		{"progress above range", func(tk *Task) { tk.Progress = 101 }, ErrInvalidProgress},
		{"progress at lower bound", func(tk *Task) { tk.Progress = 0 }, nil},
		{"progress at upper bound", func(tk *Task) { tk.Progress = 100 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := base()
			tt.mutate(tk)
			err := tk.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		task    Task
		overdue bool
	}{
		{"past due date", Task{Status: TaskStatusNew, DueDate: &yesterday}, true},
		{"future due date", Task{Status: TaskStatusNew, DueDate: &tomorrow}, false},
		{"no due date", Task{Status: TaskStatusNew}, false},
		{"completed past due is not overdue", Task{Status: TaskStatusCompleted, DueDate: &yesterday}, false},
		{"in-progress past due", Task{Status: TaskStatusInProgress, DueDate: &yesterday}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overdue, tt.task.IsOverdue(now))
		})
	}
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	inWindow := now.Add(3 * 24 * time.Hour)
	atEdge := now.Add(window)
	beyond := now.Add(8 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		task    Task
		dueSoon bool
	}{
		{"due inside window", Task{Status: TaskStatusNew, DueDate: &inWindow}, true},
		{"due exactly at window edge", Task{Status: TaskStatusNew, DueDate: &atEdge}, true},
		{"due exactly now", Task{Status: TaskStatusNew, DueDate: &now}, true},
		{"due beyond window", Task{Status: TaskStatusNew, DueDate: &beyond}, false},
		{"already past due", Task{Status: TaskStatusNew, DueDate: &past}, false},
		{"completed task excluded", Task{Status: TaskStatusCompleted, DueDate: &inWindow}, false},
		{"no due date", Task{Status: TaskStatusNew}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dueSoon, tt.task.IsDueSoon(now, window))
		})
	}
}
