package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/memory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiFixture struct {
	router *gin.Engine
	tasks  task.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	taskRepo := memory.NewTaskRepository(store)
	projectRepo := memory.NewProjectRepository(store)
	activityRepo := memory.NewActivityRepository(store)
	userRepo := memory.NewUserRepository(store)

	activityService := activity.NewService(activityRepo, zap.NewNop())
	userService := user.NewService(userRepo, taskRepo, store, zap.NewNop())
	taskService := task.NewService(taskRepo, projectRepo, activityService, store, zap.NewNop())

	taskHandler := NewTaskHandler(taskService)
	activityHandler := NewActivityHandler(activityService, userService, taskService)
	dashboardHandler := NewDashboardHandler(taskService, userService)

	router := gin.New()
	router.POST("/api/tasks", taskHandler.CreateTask)
	router.GET("/api/tasks/:id", taskHandler.GetTask)
	router.GET("/api/tasks", taskHandler.ListTasks)
	router.PUT("/api/tasks/:id", taskHandler.UpdateTask)
	router.PATCH("/api/tasks/:id", taskHandler.UpdateTask)
	router.PATCH("/api/tasks/:id/status", taskHandler.UpdateTaskStatus)
	router.DELETE("/api/tasks/:id", taskHandler.DeleteTask)
	router.POST("/api/tasks/:id/comments", taskHandler.AddComment)
	router.GET("/api/activities/recent", activityHandler.GetRecent)
	router.GET("/api/dashboard/stats", dashboardHandler.GetStats)

	return &apiFixture{router: router, tasks: taskService}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestCreateTaskEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/tasks", gin.H{"title": "Write docs"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID       uuid.UUID `json:"id"`
		Title    string    `json:"title"`
		Status   string    `json:"status"`
		Priority string    `json:"priority"`
	}
	decodeData(t, w, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Write docs", created.Title)
	assert.Equal(t, "new", created.Status)
	assert.Equal(t, "medium", created.Priority)
}

func TestCreateTaskEndpointRejectsBadStatus(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/tasks", gin.H{"title": "x", "status": "someday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchTaskEndpointPartialUpdate(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/tasks", gin.H{
		"title":       "Original title",
		"description": "keep me",
		"priority":    "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &created)

	w = f.do(t, http.MethodPatch, "/api/tasks/"+created.ID.String(), gin.H{"title": "Patched title"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	decodeData(t, w, &updated)
	assert.Equal(t, "Patched title", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "high", updated.Priority)
}

func TestUpdateTaskStatusEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	actor := uuid.New()

	w := f.do(t, http.MethodPost, "/api/tasks", gin.H{"title": "Ship it"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &created)

	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%s/status", created.ID), gin.H{
		"status": "in-progress",
		"userId": actor,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Status string `json:"status"`
	}
	decodeData(t, w, &updated)
	assert.Equal(t, "in-progress", updated.Status)

	// The mutation shows up in the recent feed.
	w = f.do(t, http.MethodGet, "/api/activities/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feed []struct {
		Type   string     `json:"type"`
		UserID *uuid.UUID `json:"userId"`
	}
	decodeData(t, w, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, "task-updated", feed[0].Type)
	assert.Equal(t, actor, *feed[0].UserID)
}

func TestUpdateTaskStatusEndpointInvalidTransition(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/tasks", gin.H{"title": "x", "status": "closed"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &created)

	w = f.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%s/status", created.ID), gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTaskEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/tasks", gin.H{"title": "temp"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &created)

	w = f.do(t, http.MethodDelete, "/api/tasks/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = f.do(t, http.MethodGet, "/api/tasks/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/tasks/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTaskEndpointBadID(t *testing.T) {
	f := newAPIFixture(t)
	w := f.do(t, http.MethodGet, "/api/tasks/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	for _, body := range []gin.H{
		{"title": "a"},
		{"title": "b", "status": "in-progress"},
		{"title": "c", "status": "completed"},
		{"title": "d", "status": "overdue"},
	} {
		w := f.do(t, http.MethodPost, "/api/tasks", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := f.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total      int `json:"total"`
		InProgress int `json:"inProgress"`
		Completed  int `json:"completed"`
		Overdue    int `json:"overdue"`
	}
	decodeData(t, w, &stats)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Overdue)
}
