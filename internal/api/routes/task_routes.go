package routes

import (
	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all task-related routes
func (tr *TaskRoutes) RegisterRoutes(router *gin.Engine, validation *middleware.ValidationMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(tr.jwtSecret))
	tasks.Use(metrics.CollectMetrics())

	tasks.GET("", tr.handler.ListTasks)
	tasks.GET("/:id", tr.handler.GetTask)

	tasks.POST("", validation.ValidateRequest(&dto.CreateTaskRequest{}), tr.handler.CreateTask)
	// Updates are partial; PATCH is the primary verb, PUT kept as an alias.
	tasks.PATCH("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), tr.handler.UpdateTask)
	tasks.PUT("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), tr.handler.UpdateTask)
	tasks.DELETE("/:id", tr.handler.DeleteTask)

	tasks.PATCH("/:id/status", validation.ValidateRequest(&dto.UpdateTaskStatusRequest{}), tr.handler.UpdateTaskStatus)
	tasks.POST("/:id/comments", validation.ValidateRequest(&dto.AddCommentRequest{}), tr.handler.AddComment)
}
