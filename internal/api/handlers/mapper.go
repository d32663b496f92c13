package handlers

import (
	"time"

	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/project"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
)

// Users

func UserToResponse(u *user.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Initials:    u.Initials,
		AvatarColor: u.AvatarColor,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func UserToSummary(u *user.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Initials: u.Initials,
	}
}

// Projects

func ProjectToResponse(p *project.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		ParentID:    p.ParentID,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ProjectNodeToResponse(node project.ProjectNode) dto.ProjectNodeResponse {
	resp := dto.ProjectNodeResponse{
		ProjectResponse: *ProjectToResponse(&node.Project),
		Children:        make([]dto.ProjectNodeResponse, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		resp.Children = append(resp.Children, ProjectNodeToResponse(child))
	}
	return resp
}

// Tasks

func TaskToResponse(t *task.Task, now time.Time) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Progress:     t.Progress,
		StartDate:    t.StartDate,
		DueDate:      t.DueDate,
		ProjectID:    t.ProjectID,
		AssigneeID:   t.AssigneeID,
		ReporterID:   t.ReporterID,
		ParentTaskID: t.ParentTaskID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		Overdue:      t.IsOverdue(now),
	}
}

func TaskToSummary(t *task.Task) *dto.TaskSummary {
	if t == nil {
		return nil
	}
	return &dto.TaskSummary{
		ID:     t.ID,
		Title:  t.Title,
		Status: string(t.Status),
	}
}

// Activities

func ActivityToResponse(a *activity.Activity) *dto.ActivityResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivityResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		Description: a.Description,
		UserID:      a.UserID,
		TaskID:      a.TaskID,
		ProjectID:   a.ProjectID,
		CreatedAt:   a.CreatedAt,
	}
}
