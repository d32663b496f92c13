package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepositoryCRUD(t *testing.T) {
	store := NewStore()
	repo := NewTaskRepository(store)
	ctx := context.Background()

	tk := &task.Task{Title: "first", Status: task.TaskStatusNew, Priority: task.TaskPriorityMedium}
	require.NoError(t, repo.Create(ctx, tk))
	assert.NotEqual(t, uuid.Nil, tk.ID)

	got, err := repo.FindByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	// The returned value is a copy; mutating it does not touch the store.
	got.Title = "mutated"
	again, err := repo.FindByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", again.Title)

	tk.Title = "renamed"
	require.NoError(t, repo.Update(ctx, tk))
	got, err = repo.FindByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	require.NoError(t, repo.Delete(ctx, tk.ID))
	_, err = repo.FindByID(ctx, tk.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, tk.ID), task.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Update(ctx, tk), task.ErrTaskNotFound)
}

func TestTaskRepositoryFindAllPreservesInsertionOrder(t *testing.T) {
	store := NewStore()
	repo := NewTaskRepository(store)
	ctx := context.Background()

	titles := []string{"one", "two", "three", "four"}
	for _, title := range titles {
		require.NoError(t, repo.Create(ctx, &task.Task{
			Title:    title,
			Status:   task.TaskStatusNew,
			Priority: task.TaskPriorityMedium,
		}))
	}

	tasks, err := repo.FindAll(ctx, task.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	for i, title := range titles {
		assert.Equal(t, title, tasks[i].Title)
	}
}

func TestTaskRepositoryFilters(t *testing.T) {
	store := NewStore()
	repo := NewTaskRepository(store)
	ctx := context.Background()

	projectID := uuid.New()
	assigneeID := uuid.New()
	parentID := uuid.New()
	status := task.TaskStatusInProgress

	require.NoError(t, repo.Create(ctx, &task.Task{ID: parentID, Title: "parent", Status: task.TaskStatusNew, Priority: task.TaskPriorityMedium, ProjectID: &projectID}))
	require.NoError(t, repo.Create(ctx, &task.Task{Title: "child", Status: status, Priority: task.TaskPriorityHigh, ProjectID: &projectID, ParentTaskID: &parentID, AssigneeID: &assigneeID}))
	require.NoError(t, repo.Create(ctx, &task.Task{Title: "elsewhere", Status: task.TaskStatusNew, Priority: task.TaskPriorityMedium}))

	byProject, err := repo.FindAll(ctx, task.TaskFilter{ProjectID: &projectID})
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	byParent, err := repo.FindAll(ctx, task.TaskFilter{ParentTaskID: &parentID})
	require.NoError(t, err)
	require.Len(t, byParent, 1)
	assert.Equal(t, "child", byParent[0].Title)

	byAssignee, err := repo.FindAll(ctx, task.TaskFilter{AssigneeID: &assigneeID})
	require.NoError(t, err)
	assert.Len(t, byAssignee, 1)

	byStatus, err := repo.FindAll(ctx, task.TaskFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)
}

func TestActivityRepositoryOrdering(t *testing.T) {
	store := NewStore()
	repo := NewActivityRepository(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &activity.Activity{Type: activity.TypeTaskCreated, Description: "oldest", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &activity.Activity{Type: activity.TypeTaskUpdated, Description: "newest", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &activity.Activity{Type: activity.TypeTaskUpdated, Description: "middle", CreatedAt: base.Add(time.Minute)}))

	entries, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Description)
	assert.Equal(t, "middle", entries[1].Description)
	assert.Equal(t, "oldest", entries[2].Description)

	limited, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestActivityRepositoryTieBreakIsInsertionOrder(t *testing.T) {
	store := NewStore()
	repo := NewActivityRepository(store)
	ctx := context.Background()

	// Identical timestamps; only the insertion counter can order these.
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, desc := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &activity.Activity{
			Type:        activity.TypeTaskUpdated,
			Description: desc,
			CreatedAt:   ts,
		}))
	}

	entries, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Description)
	assert.Equal(t, "second", entries[1].Description)
	assert.Equal(t, "third", entries[2].Description)

	// Seq grows monotonically with insertion.
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, int64(2), entries[1].Seq)
	assert.Equal(t, int64(3), entries[2].Seq)
}

func TestTransactionRunsFn(t *testing.T) {
	store := NewStore()
	repo := NewTaskRepository(store)
	ctx := context.Background()

	err := store.Transaction(ctx, func(txCtx context.Context) error {
		return repo.Create(txCtx, &task.Task{Title: "inside tx", Status: task.TaskStatusNew, Priority: task.TaskPriorityMedium})
	})
	require.NoError(t, err)

	tasks, err := repo.FindAll(ctx, task.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	wantErr := assert.AnError
	err = store.Transaction(ctx, func(context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
