package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	FullName    string `json:"fullName" binding:"required" validate:"required,max=100"`
	Role        string `json:"role" validate:"omitempty,max=50"`
	AvatarColor string `json:"avatarColor" validate:"omitempty,max=20"`
	Password    string `json:"password" binding:"required" validate:"required,min=8"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,max=100"`
	Role        *string `json:"role,omitempty" validate:"omitempty,max=50"`
	Initials    *string `json:"initials,omitempty" validate:"omitempty,max=4"`
	AvatarColor *string `json:"avatarColor,omitempty" validate:"omitempty,max=20"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	Role        string    `json:"role"`
	Initials    string    `json:"initials"`
	AvatarColor string    `json:"avatarColor"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserSummary is the short form embedded in enriched responses.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Initials string    `json:"initials"`
}
