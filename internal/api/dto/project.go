package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=2000"`
	Status      string     `json:"status" validate:"omitempty,oneof=active completed archived"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	IsPublic    *bool      `json:"isPublic,omitempty"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=active completed archived"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	IsPublic    *bool      `json:"isPublic,omitempty"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	IsPublic    bool       `json:"isPublic"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectNodeResponse is one node of the nested display hierarchy.
type ProjectNodeResponse struct {
	ProjectResponse
	Children []ProjectNodeResponse `json:"children"`
}
