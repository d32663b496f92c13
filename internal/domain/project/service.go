package project

import (
	"context"
	"fmt"
	"time"

	ports "github.com/ctgmao2/planwise/internal/core/ports/repository"
	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Status      ProjectStatus
	ParentID    *uuid.UUID
	IsPublic    *bool
	ActorID     *uuid.UUID
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
	ParentID    *uuid.UUID
	IsPublic    *bool
	ActorID     *uuid.UUID
}

type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
	GetHierarchy(ctx context.Context) ([]ProjectNode, error)
}

type service struct {
	repo       Repository
	tasks      task.TaskRepository
	activities activity.Service
	txRunner   ports.TxRunner
	logger     *zap.Logger
}

func NewService(repo Repository, tasks task.TaskRepository, activities activity.Service, txRunner ports.TxRunner, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		tasks:      tasks,
		activities: activities,
		txRunner:   txRunner,
		logger:     logger,
	}
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = ProjectStatusActive
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if input.ParentID != nil {
		ok, err := s.repo.Exists(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrParentNotFound
		}
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	now := time.Now()
	p := &Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		ParentID:    input.ParentID,
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.RecordInput{
		Type:        activity.TypeProjectCreated,
		Description: fmt.Sprintf("created project: %s", p.Name),
		UserID:      input.ActorID,
		ProjectID:   &p.ID,
	})

	s.logger.Info("project created",
		zap.String("project_id", p.ID.String()),
		zap.String("name", p.Name))

	return p, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		p.Status = *input.Status
	}
	if input.ParentID != nil {
		if err := s.validateParent(ctx, id, *input.ParentID); err != nil {
			return nil, err
		}
		p.ParentID = input.ParentID
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}

	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.RecordInput{
		Type:        activity.TypeProjectUpdated,
		Description: fmt.Sprintf("updated project: %s", p.Name),
		UserID:      input.ActorID,
		ProjectID:   &p.ID,
	})

	return p, nil
}

// validateParent rejects a parent assignment whose ancestor chain reaches the
// project itself. The visited set also stops walks over pre-existing loops.
func (s *service) validateParent(ctx context.Context, id, parentID uuid.UUID) error {
	if parentID == id {
		return ErrHierarchyCycle
	}

	visited := map[uuid.UUID]bool{id: true}
	current := parentID
	for {
		if visited[current] {
			return ErrHierarchyCycle
		}
		visited[current] = true

		ancestor, err := s.repo.FindByID(ctx, current)
		if err != nil {
			if err == ErrProjectNotFound {
				if current == parentID {
					return ErrParentNotFound
				}
				// Dangling ancestor terminates the chain; treated as root.
				return nil
			}
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		current = *ancestor.ParentID
	}
}

// DeleteProject removes the project and every task attached to it, including
// subtask trees, in one transaction. Subprojects are left in place: the
// cascade follows task.project_id only, never project.parent_id.
func (s *service) DeleteProject(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txRunner.Transaction(ctx, func(txCtx context.Context) error {
		tasks, err := s.tasks.FindAll(txCtx, task.TaskFilter{ProjectID: &id})
		if err != nil {
			return err
		}
		visited := make(map[uuid.UUID]bool)
		for _, t := range tasks {
			if err := s.deleteTaskSubtree(txCtx, t.ID, visited); err != nil {
				return err
			}
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.activities.Record(ctx, activity.RecordInput{
		Type:        activity.TypeProjectDeleted,
		Description: fmt.Sprintf("deleted project: %s", p.Name),
		UserID:      actorID,
		ProjectID:   &id,
	})

	s.logger.Info("project deleted",
		zap.String("project_id", id.String()),
		zap.String("name", p.Name))

	return nil
}

func (s *service) deleteTaskSubtree(ctx context.Context, id uuid.UUID, visited map[uuid.UUID]bool) error {
	if visited[id] {
		return nil
	}
	visited[id] = true

	children, err := s.tasks.FindAll(ctx, task.TaskFilter{ParentTaskID: &id})
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteTaskSubtree(ctx, child.ID, visited); err != nil {
			return err
		}
	}

	err = s.tasks.Delete(ctx, id)
	if err == task.ErrTaskNotFound {
		// Already removed by an earlier branch of the cascade.
		return nil
	}
	return err
}

// GetHierarchy builds the display forest: every project grouped under its
// parent, with nil or dangling parents treated as roots. Pure read-side
// transform over one fetch.
func (s *service) GetHierarchy(ctx context.Context) ([]ProjectNode, error) {
	projects, err := s.repo.FindAll(ctx, ProjectFilter{})
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]bool, len(projects))
	for _, p := range projects {
		byID[p.ID] = true
	}

	children := make(map[uuid.UUID][]Project)
	var roots []Project
	for _, p := range projects {
		if p.ParentID == nil || !byID[*p.ParentID] {
			roots = append(roots, p)
			continue
		}
		children[*p.ParentID] = append(children[*p.ParentID], p)
	}

	var build func(p Project, visited map[uuid.UUID]bool) ProjectNode
	build = func(p Project, visited map[uuid.UUID]bool) ProjectNode {
		node := ProjectNode{Project: p, Children: []ProjectNode{}}
		if visited[p.ID] {
			return node
		}
		visited[p.ID] = true
		for _, child := range children[p.ID] {
			node.Children = append(node.Children, build(child, visited))
		}
		return node
	}

	visited := make(map[uuid.UUID]bool)
	nodes := make([]ProjectNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root, visited))
	}
	return nodes, nil
}
