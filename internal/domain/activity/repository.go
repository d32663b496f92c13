package activity

import (
	"context"
	"errors"

	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// ActivityFilter defines filtering options for the activity feed
type ActivityFilter struct {
	UserID    *uuid.UUID
	TaskID    *uuid.UUID
	ProjectID *uuid.UUID
	Limit     int
}

// Repository defines the interface for activity persistence. The log is
// append-only: no update or delete operations exist.
type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	FindRecent(ctx context.Context, limit int) ([]Activity, error)
	FindAll(ctx context.Context, filter ActivityFilter) ([]Activity, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, activity *Activity) error {
	return r.db.Conn(ctx).Create(activity).Error
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Activity, error) {
	var activities []Activity
	err := r.db.Conn(ctx).
		Order("created_at DESC, seq ASC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repository) FindAll(ctx context.Context, filter ActivityFilter) ([]Activity, error) {
	var activities []Activity
	query := r.db.Conn(ctx).Model(&Activity{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", filter.TaskID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}

	// Entries sharing a timestamp stay in insertion order.
	query = query.Order("created_at DESC, seq ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
