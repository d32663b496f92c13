package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/ctgmao2/planwise/internal/api/routes"
	"github.com/ctgmao2/planwise/internal/core/ports/repository"
	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/project"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/memory"
	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/postgres/connection"
	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/postgres/migrations"
	"github.com/ctgmao2/planwise/pkg/config"
	"github.com/ctgmao2/planwise/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// backend bundles the persistence layer so main can swap implementations
// behind the domain interfaces.
type backend struct {
	users      user.Repository
	projects   project.Repository
	tasks      task.TaskRepository
	activities activity.Repository
	txRunner   repository.TxRunner
	ready      func() error
	close      func() error
}

func newBackend(cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Database.InMemory {
		log.Warn("Using in-memory persistence; data will not survive a restart")
		store := memory.NewStore()
		return &backend{
			users:      memory.NewUserRepository(store),
			projects:   memory.NewProjectRepository(store),
			tasks:      memory.NewTaskRepository(store),
			activities: memory.NewActivityRepository(store),
			txRunner:   store,
		}, nil
	}

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return &backend{
		users:      user.NewRepository(db),
		projects:   project.NewRepository(db),
		tasks:      task.NewRepository(db),
		activities: activity.NewRepository(db),
		txRunner:   db,
		ready:      db.Ping,
		close:      db.Close,
	}, nil
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowAllOrigins:  len(cfg.CORS.AllowedOrigins) == 0,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	store, err := newBackend(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize persistence", zap.Error(err))
	}
	if store.close != nil {
		defer store.close()
	}

	// Services
	activityService := activity.NewService(store.activities, log.Logger)
	userService := user.NewService(store.users, store.tasks, store.txRunner, log.Logger)
	taskService := task.NewService(store.tasks, store.projects, activityService, store.txRunner, log.Logger)
	projectService := project.NewService(store.projects, store.tasks, activityService, store.txRunner, log.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	activityHandler := handlers.NewActivityHandler(activityService, userService, taskService)
	dashboardHandler := handlers.NewDashboardHandler(taskService, userService)

	validation := middleware.NewValidationMiddleware(log)

	routes.SetupHealthRoutes(router, store.ready)

	routes.NewAuthRoutes(authHandler).RegisterRoutes(router, validation)
	routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, validation)
	routes.NewProjectRoutes(projectHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, validation)
	routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, validation)
	routes.NewActivityRoutes(activityHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewDashboardRoutes(dashboardHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
