package routes

import (
	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// ProjectRoutes handles the setup of project-related routes
type ProjectRoutes struct {
	handler   *handlers.ProjectHandler
	jwtSecret string
}

// NewProjectRoutes creates a new ProjectRoutes instance
func NewProjectRoutes(handler *handlers.ProjectHandler, jwtSecret string) *ProjectRoutes {
	return &ProjectRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all project-related routes
func (pr *ProjectRoutes) RegisterRoutes(router *gin.Engine, validation *middleware.ValidationMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	projects := router.Group("/api/projects")
	projects.Use(middleware.NewAuthMiddleware(pr.jwtSecret))
	projects.Use(metrics.CollectMetrics())

	projects.GET("", pr.handler.ListProjects)
	projects.GET("/hierarchy", pr.handler.GetHierarchy)
	projects.GET("/:id", pr.handler.GetProject)

	projects.POST("", validation.ValidateRequest(&dto.CreateProjectRequest{}), pr.handler.CreateProject)
	// Updates are partial; PATCH is the primary verb, PUT kept as an alias.
	projects.PATCH("/:id", validation.ValidateRequest(&dto.UpdateProjectRequest{}), pr.handler.UpdateProject)
	projects.PUT("/:id", validation.ValidateRequest(&dto.UpdateProjectRequest{}), pr.handler.UpdateProject)
	projects.DELETE("/:id", pr.handler.DeleteProject)
}
