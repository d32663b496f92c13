package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// IsValid validates the project status
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

// Project is a node in the project forest. ParentID is nil for roots; a
// parent chain must never loop back onto the project itself.
type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	Name        string        `json:"name" gorm:"type:varchar(255);not null"`
	Description string        `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"not null;default:'active';index:idx_project_status"`
	ParentID    *uuid.UUID    `json:"parent_id,omitempty" gorm:"type:uuid;index:idx_project_parent"`
	IsPublic    bool          `json:"is_public" gorm:"not null;default:true"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index:idx_project_created"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate is called before inserting a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// BeforeUpdate is called before updating a project
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	p.UpdatedAt = time.Now()
	return nil
}

// ProjectNode is one entry in the display hierarchy: a project with its
// subprojects nested under it.
type ProjectNode struct {
	Project  Project       `json:"project"`
	Children []ProjectNode `json:"children"`
}
