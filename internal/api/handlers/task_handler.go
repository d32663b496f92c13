package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.CreateTaskRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != "" && !task.TaskStatus(req.Status).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
		return
	}
	if req.Priority != "" && !task.TaskPriority(req.Priority).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
		return
	}

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       task.TaskStatus(req.Status),
		Priority:     task.TaskPriority(req.Priority),
		Progress:     req.Progress,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		ProjectID:    req.ProjectID,
		AssigneeID:   req.AssigneeID,
		ReporterID:   req.ReporterID,
		ParentTaskID: req.ParentTaskID,
		ActorID:      actorID(c),
	})
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TaskToResponse(created, time.Now())})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	t, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(t, time.Now())})
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := task.TaskFilter{}

	if projectIDStr := c.Query("projectId"); projectIDStr != "" {
		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
			return
		}
		filter.ProjectID = &projectID
	}
	if assigneeStr := c.Query("assigneeId"); assigneeStr != "" {
		assigneeID, err := uuid.Parse(assigneeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assigneeId"})
			return
		}
		filter.AssigneeID = &assigneeID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := task.TaskStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *TaskToResponse(&tasks[i], now))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.UpdateTaskRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := task.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Progress:     req.Progress,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		ProjectID:    req.ProjectID,
		AssigneeID:   req.AssigneeID,
		ReporterID:   req.ReporterID,
		ParentTaskID: req.ParentTaskID,
		ActorID:      actorID(c),
	}
	if req.Status != nil {
		status := task.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := task.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated, time.Now())})
}

// UpdateTaskStatus backs PATCH /api/tasks/:id/status.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskStatusRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.UpdateTaskStatusRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := req.UserID
	if userID == nil {
		userID = actorID(c)
	}

	updated, err := h.service.UpdateTaskStatus(c.Request.Context(), id, task.TaskStatus(req.Status), userID)
	if err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated, time.Now())})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddComment backs POST /api/tasks/:id/comments.
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.AddCommentRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.AddCommentRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := req.UserID
	if userID == nil {
		userID = actorID(c)
	}

	if err := h.service.AddComment(c.Request.Context(), id, userID, req.Body); err != nil {
		c.JSON(taskErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

func taskErrorStatus(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidProgress),
		errors.Is(err, task.ErrInvalidTransition),
		errors.Is(err, task.ErrProjectNotFound),
		errors.Is(err, task.ErrParentNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
