package project_test

import (
	"context"
	"testing"

	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/project"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type projectFixture struct {
	store      *memory.Store
	tasks      task.TaskRepository
	activities activity.Repository
	service    project.Service
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	store := memory.NewStore()
	tasks := memory.NewTaskRepository(store)
	projects := memory.NewProjectRepository(store)
	activities := memory.NewActivityRepository(store)
	activityService := activity.NewService(activities, zap.NewNop())
	return &projectFixture{
		store:      store,
		tasks:      tasks,
		activities: activities,
		service:    project.NewService(projects, tasks, activityService, store, zap.NewNop()),
	}
}

func (f *projectFixture) mustCreate(t *testing.T, input project.CreateProjectInput) *project.Project {
	t.Helper()
	p, err := f.service.CreateProject(context.Background(), input)
	require.NoError(t, err)
	return p
}

func (f *projectFixture) addTask(t *testing.T, title string, projectID, parentID *uuid.UUID) *task.Task {
	t.Helper()
	tk := &task.Task{
		ID:           uuid.New(),
		Title:        title,
		Status:       task.TaskStatusNew,
		Priority:     task.TaskPriorityMedium,
		ProjectID:    projectID,
		ParentTaskID: parentID,
	}
	require.NoError(t, f.tasks.Create(context.Background(), tk))
	return tk
}

func TestCreateProjectDefaults(t *testing.T) {
	f := newProjectFixture(t)

	p := f.mustCreate(t, project.CreateProjectInput{Name: "Redesign"})

	assert.Equal(t, project.ProjectStatusActive, p.Status)
	assert.True(t, p.IsPublic)
	assert.Nil(t, p.ParentID)
}

func TestCreateProjectValidation(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateProject(ctx, project.CreateProjectInput{})
	assert.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = f.service.CreateProject(ctx, project.CreateProjectInput{Name: "x", Status: "paused"})
	assert.ErrorIs(t, err, project.ErrInvalidStatus)

	missing := uuid.New()
	_, err = f.service.CreateProject(ctx, project.CreateProjectInput{Name: "x", ParentID: &missing})
	assert.ErrorIs(t, err, project.ErrParentNotFound)
}

func TestCreateProjectRecordsActivity(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	p := f.mustCreate(t, project.CreateProjectInput{Name: "Redesign", ActorID: &actor})

	entries, err := f.activities.FindAll(ctx, activity.ActivityFilter{ProjectID: &p.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.TypeProjectCreated, entries[0].Type)
	assert.Equal(t, actor, *entries[0].UserID)
}

func TestUpdateProjectRejectsCycle(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	root := f.mustCreate(t, project.CreateProjectInput{Name: "root"})
	mid := f.mustCreate(t, project.CreateProjectInput{Name: "mid", ParentID: &root.ID})
	leaf := f.mustCreate(t, project.CreateProjectInput{Name: "leaf", ParentID: &mid.ID})

	// Self-parenting.
	_, err := f.service.UpdateProject(ctx, root.ID, project.UpdateProjectInput{ParentID: &root.ID})
	assert.ErrorIs(t, err, project.ErrHierarchyCycle)

	// Reparenting the root under its own grandchild.
	_, err = f.service.UpdateProject(ctx, root.ID, project.UpdateProjectInput{ParentID: &leaf.ID})
	assert.ErrorIs(t, err, project.ErrHierarchyCycle)

	// Moving the leaf directly under the root is fine.
	updated, err := f.service.UpdateProject(ctx, leaf.ID, project.UpdateProjectInput{ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *updated.ParentID)
}

func TestUpdateProjectMissingParent(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	p := f.mustCreate(t, project.CreateProjectInput{Name: "solo"})

	missing := uuid.New()
	_, err := f.service.UpdateProject(ctx, p.ID, project.UpdateProjectInput{ParentID: &missing})
	assert.ErrorIs(t, err, project.ErrParentNotFound)
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	p := f.mustCreate(t, project.CreateProjectInput{Name: "doomed"})
	other := f.mustCreate(t, project.CreateProjectInput{Name: "kept"})

	parent := f.addTask(t, "epic", &p.ID, nil)
	child := f.addTask(t, "story", &p.ID, &parent.ID)
	// Subtask without a project_id of its own still falls with its parent.
	orphanChild := f.addTask(t, "loose subtask", nil, &child.ID)
	kept := f.addTask(t, "other work", &other.ID, nil)

	require.NoError(t, f.service.DeleteProject(ctx, p.ID, nil))

	_, err := f.service.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)

	for _, id := range []uuid.UUID{parent.ID, child.ID, orphanChild.ID} {
		_, err := f.tasks.FindByID(ctx, id)
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	}

	survivor, err := f.tasks.FindByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "other work", survivor.Title)
}

func TestDeleteProjectDoesNotCascadeSubprojects(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	parent := f.mustCreate(t, project.CreateProjectInput{Name: "parent"})
	sub := f.mustCreate(t, project.CreateProjectInput{Name: "sub", ParentID: &parent.ID})
	subTask := f.addTask(t, "sub work", &sub.ID, nil)

	require.NoError(t, f.service.DeleteProject(ctx, parent.ID, nil))

	// The subproject and its tasks survive; only the parent and its own
	// tasks are removed.
	survivor, err := f.service.GetProject(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *survivor.ParentID)

	_, err = f.tasks.FindByID(ctx, subTask.ID)
	assert.NoError(t, err)
}

func TestDeleteProjectRecordsActivity(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	p := f.mustCreate(t, project.CreateProjectInput{Name: "doomed"})
	require.NoError(t, f.service.DeleteProject(ctx, p.ID, &actor))

	entries, err := f.activities.FindAll(ctx, activity.ActivityFilter{ProjectID: &p.ID})
	require.NoError(t, err)

	var deleted int
	for _, e := range entries {
		if e.Type == activity.TypeProjectDeleted {
			deleted++
			assert.Contains(t, e.Description, "doomed")
			assert.Equal(t, actor, *e.UserID)
		}
	}
	assert.Equal(t, 1, deleted)
}

func TestGetHierarchy(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	rootA := f.mustCreate(t, project.CreateProjectInput{Name: "A"})
	rootB := f.mustCreate(t, project.CreateProjectInput{Name: "B"})
	childA1 := f.mustCreate(t, project.CreateProjectInput{Name: "A1", ParentID: &rootA.ID})
	f.mustCreate(t, project.CreateProjectInput{Name: "A1a", ParentID: &childA1.ID})

	nodes, err := f.service.GetHierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, rootA.ID, nodes[0].Project.ID)
	assert.Equal(t, rootB.ID, nodes[1].Project.ID)

	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "A1", nodes[0].Children[0].Project.Name)
	require.Len(t, nodes[0].Children[0].Children, 1)
	assert.Equal(t, "A1a", nodes[0].Children[0].Children[0].Project.Name)
	assert.Empty(t, nodes[1].Children)
}

func TestGetHierarchyDanglingParentBecomesRoot(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	root := f.mustCreate(t, project.CreateProjectInput{Name: "root"})
	sub := f.mustCreate(t, project.CreateProjectInput{Name: "sub", ParentID: &root.ID})

	require.NoError(t, f.service.DeleteProject(ctx, root.ID, nil))

	nodes, err := f.service.GetHierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, sub.ID, nodes[0].Project.ID)
}
