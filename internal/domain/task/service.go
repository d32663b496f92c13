package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ctgmao2/planwise/internal/core/ports/repository"
	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrProjectNotFound   = errors.New("referenced project not found")
	ErrParentNotFound    = errors.New("referenced parent task not found")
)

// ProjectChecker verifies that a referenced project exists. Implemented by the
// project repositories.
type ProjectChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type CreateTaskInput struct {
	Title        string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	Progress     int
	StartDate    *time.Time
	DueDate      *time.Time
	ProjectID    *uuid.UUID
	AssigneeID   *uuid.UUID
	ReporterID   *uuid.UUID
	ParentTaskID *uuid.UUID
	ActorID      *uuid.UUID
}

type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	Progress     *int
	StartDate    *time.Time
	DueDate      *time.Time
	ProjectID    *uuid.UUID
	AssigneeID   *uuid.UUID
	ReporterID   *uuid.UUID
	ParentTaskID *uuid.UUID
	ActorID      *uuid.UUID
}

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status TaskStatus, userID *uuid.UUID) (*Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, id uuid.UUID, userID *uuid.UUID, body string) error

	CountTasksByStatus(ctx context.Context) (DashboardStats, error)
	DueSoonTasks(ctx context.Context, now time.Time) ([]Task, error)
}

type service struct {
	repo       TaskRepository
	projects   ProjectChecker
	activities activity.Service
	txRunner   repository.TxRunner
	logger     *zap.Logger
}

func NewService(repo TaskRepository, projects ProjectChecker, activities activity.Service, txRunner repository.TxRunner, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		projects:   projects,
		activities: activities,
		txRunner:   txRunner,
		logger:     logger,
	}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = TaskStatusNew
	}
	if input.Priority == "" {
		input.Priority = TaskPriorityMedium
	}

	if input.ProjectID != nil {
		ok, err := s.projects.Exists(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrProjectNotFound
		}
	}
	if input.ParentTaskID != nil {
		if _, err := s.repo.FindByID(ctx, *input.ParentTaskID); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	now := time.Now()
	t := &Task{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		Progress:     input.Progress,
		StartDate:    input.StartDate,
		DueDate:      input.DueDate,
		ProjectID:    input.ProjectID,
		AssigneeID:   input.AssigneeID,
		ReporterID:   input.ReporterID,
		ParentTaskID: input.ParentTaskID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	// Only assigned project tasks show up in the feed.
	if t.AssigneeID != nil && t.ProjectID != nil {
		s.activities.Record(ctx, activity.RecordInput{
			Type:        activity.TypeTaskCreated,
			Description: fmt.Sprintf("created task: %s", t.Title),
			UserID:      actorOrFallback(input.ActorID, t.ReporterID),
			TaskID:      &t.ID,
			ProjectID:   t.ProjectID,
		})
	}

	s.logger.Info("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("status", string(t.Status)))

	return t, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil && *input.Status != t.Status {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if !t.Status.CanTransitionTo(*input.Status) {
			return nil, ErrInvalidTransition
		}
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.Progress != nil {
		t.Progress = *input.Progress
	}
	if input.StartDate != nil {
		t.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	if input.ProjectID != nil {
		ok, err := s.projects.Exists(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrProjectNotFound
		}
		t.ProjectID = input.ProjectID
	}
	if input.AssigneeID != nil {
		t.AssigneeID = input.AssigneeID
	}
	if input.ReporterID != nil {
		t.ReporterID = input.ReporterID
	}
	if input.ParentTaskID != nil {
		if *input.ParentTaskID == t.ID {
			return nil, ErrInvalidInput
		}
		if _, err := s.repo.FindByID(ctx, *input.ParentTaskID); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		t.ParentTaskID = input.ParentTaskID
	}

	t.UpdatedAt = time.Now()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.recordTaskMutation(ctx, t, input.ActorID, fmt.Sprintf("updated task: %s", t.Title))

	return t, nil
}

// UpdateTaskStatus is the dedicated status-only mutation backing
// PATCH /api/tasks/:id/status.
func (s *service) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status TaskStatus, userID *uuid.UUID) (*Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !t.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	t.Status = status
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.recordTaskMutation(ctx, t, userID, fmt.Sprintf("changed task status to %s: %s", status, t.Title))

	return t, nil
}

// DeleteTask removes a task and, recursively, every subtask under it. The
// whole cascade runs in one transaction.
func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	err := s.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		visited := make(map[uuid.UUID]bool)
		return s.deleteSubtree(txCtx, id, visited)
	})
	if err != nil {
		return err
	}

	s.logger.Info("task deleted", zap.String("task_id", id.String()))
	return nil
}

// deleteSubtree removes the task and its descendants depth-first. The visited
// set guards against parent cycles in pre-existing data.
func (s *service) deleteSubtree(ctx context.Context, id uuid.UUID, visited map[uuid.UUID]bool) error {
	if visited[id] {
		return nil
	}
	visited[id] = true

	children, err := s.repo.FindAll(ctx, TaskFilter{ParentTaskID: &id})
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, child.ID, visited); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

// AddComment records a comment-added activity against the task. Comment
// bodies live in the activity description.
func (s *service) AddComment(ctx context.Context, id uuid.UUID, userID *uuid.UUID, body string) error {
	if body == "" {
		return ErrInvalidInput
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.activities.Record(ctx, activity.RecordInput{
		Type:        activity.TypeCommentAdded,
		Description: fmt.Sprintf("commented on %s: %s", t.Title, body),
		UserID:      userID,
		TaskID:      &t.ID,
		ProjectID:   t.ProjectID,
	})
	return nil
}

// recordTaskMutation appends the activity entry for a successful task update.
// A completed result gets the task-completed type, anything else task-updated.
func (s *service) recordTaskMutation(ctx context.Context, t *Task, userID *uuid.UUID, description string) {
	entryType := activity.TypeTaskUpdated
	if t.Status == TaskStatusCompleted {
		entryType = activity.TypeTaskCompleted
	}
	s.activities.Record(ctx, activity.RecordInput{
		Type:        entryType,
		Description: description,
		UserID:      userID,
		TaskID:      &t.ID,
		ProjectID:   t.ProjectID,
	})
}

func actorOrFallback(actor, fallback *uuid.UUID) *uuid.UUID {
	if actor != nil {
		return actor
	}
	return fallback
}
