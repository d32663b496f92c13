package task

import (
	"context"
	"errors"

	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

// TaskFilter defines filtering options for tasks
type TaskFilter struct {
	ProjectID    *uuid.UUID
	ParentTaskID *uuid.UUID
	AssigneeID   *uuid.UUID
	Status       *TaskStatus
	Priority     *TaskPriority
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearUserReferences(ctx context.Context, userID uuid.UUID) error
}

type taskRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	return r.db.Conn(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.Conn(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, error) {
	var tasks []Task
	query := r.db.Conn(ctx).Model(&Task{})

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ParentTaskID != nil {
		query = query.Where("parent_task_id = ?", filter.ParentTaskID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority)
	}

	if err := query.Order("created_at").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	result := r.db.Conn(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.Conn(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) ClearUserReferences(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.Conn(ctx).Model(&Task{}).
		Where("assignee_id = ?", userID).
		Update("assignee_id", nil).Error; err != nil {
		return err
	}
	return r.db.Conn(ctx).Model(&Task{}).
		Where("reporter_id = ?", userID).
		Update("reporter_id", nil).Error
}
