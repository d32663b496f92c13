package handlers

import (
	"errors"
	"net/http"

	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/ctgmao2/planwise/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	service project.Service
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(service project.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.CreateProjectRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateProject(c.Request.Context(), project.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      project.ProjectStatus(req.Status),
		ParentID:    req.ParentID,
		IsPublic:    req.IsPublic,
		ActorID:     actorID(c),
	})
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ProjectToResponse(created)})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	p, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(p)})
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filter := project.ProjectFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := project.ProjectStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}
	if parentStr := c.Query("parentId"); parentStr != "" {
		parentID, err := uuid.Parse(parentStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parentId"})
			return
		}
		filter.ParentID = &parentID
	}

	projects, err := h.service.ListProjects(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *ProjectToResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetHierarchy returns the nested display tree of projects.
func (h *ProjectHandler) GetHierarchy(c *gin.Context) {
	nodes, err := h.service.GetHierarchy(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ProjectNodeResponse, 0, len(nodes))
	for _, node := range nodes {
		responses = append(responses, ProjectNodeToResponse(node))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req dto.UpdateProjectRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.UpdateProjectRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsPublic:    req.IsPublic,
		ActorID:     actorID(c),
	}
	if req.Status != nil {
		status := project.ProjectStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.service.UpdateProject(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(updated)})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id, actorID(c)); err != nil {
		c.JSON(projectErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func projectErrorStatus(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidStatus),
		errors.Is(err, project.ErrParentNotFound),
		errors.Is(err, project.ErrHierarchyCycle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// actorID resolves the acting user from the auth middleware, when present.
func actorID(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.GetUserID(c); ok {
		return &id
	}
	return nil
}
