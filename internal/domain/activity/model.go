package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityType tags a log entry with the kind of mutation it records.
type ActivityType string

const (
	TypeTaskCreated    ActivityType = "task-created"
	TypeTaskUpdated    ActivityType = "task-updated"
	TypeTaskCompleted  ActivityType = "task-completed"
	TypeCommentAdded   ActivityType = "comment-added"
	TypeProjectCreated ActivityType = "project-created"
	TypeProjectUpdated ActivityType = "project-updated"
	TypeProjectDeleted ActivityType = "project-deleted"
)

// IsValid reports whether the type belongs to the fixed vocabulary.
func (t ActivityType) IsValid() bool {
	switch t {
	case TypeTaskCreated, TypeTaskUpdated, TypeTaskCompleted, TypeCommentAdded,
		TypeProjectCreated, TypeProjectUpdated, TypeProjectDeleted:
		return true
	}
	return false
}

// Activity is an immutable audit-log entry. Rows are only ever inserted;
// there is no update or delete path.
type Activity struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	// Seq is a monotonically increasing insertion counter. It breaks ties
	// between entries sharing a created_at timestamp so the feed order is
	// deterministic.
	Seq         int64        `json:"-" gorm:"autoIncrement;uniqueIndex:idx_activity_seq"`
	Type        ActivityType `json:"type" gorm:"not null;index:idx_activity_type"`
	Description string       `json:"description" gorm:"type:text;not null"`
	UserID      *uuid.UUID   `json:"user_id,omitempty" gorm:"type:uuid;index:idx_activity_user"`
	TaskID      *uuid.UUID   `json:"task_id,omitempty" gorm:"type:uuid;index:idx_activity_task"`
	ProjectID   *uuid.UUID   `json:"project_id,omitempty" gorm:"type:uuid;index:idx_activity_project"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;index:idx_activity_created"`
}

// TableName specifies the table name for the Activity model
func (Activity) TableName() string {
	return "activities"
}

// BeforeCreate is called before inserting a new activity record
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}
