package memory

import (
	"context"

	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/google/uuid"
)

type taskRepository struct {
	store *Store
}

// NewTaskRepository returns an in-memory task.TaskRepository backed by the
// store. It also satisfies user.TaskReferenceCleaner.
func NewTaskRepository(store *Store) task.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) Create(ctx context.Context, t *task.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.store.tasks[t.ID] = *t
	r.store.taskOrder = append(r.store.taskOrder, t.ID)
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return &t, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]task.Task, 0, len(r.store.taskOrder))
	for _, id := range r.store.taskOrder {
		t := r.store.tasks[id]
		if filter.ProjectID != nil && (t.ProjectID == nil || *t.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.ParentTaskID != nil && (t.ParentTaskID == nil || *t.ParentTaskID != *filter.ParentTaskID) {
			continue
		}
		if filter.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *filter.AssigneeID) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, t *task.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	r.store.tasks[t.ID] = *t
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(r.store.tasks, id)
	r.store.taskOrder = removeID(r.store.taskOrder, id)
	return nil
}

func (r *taskRepository) ClearUserReferences(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, t := range r.store.tasks {
		changed := false
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			t.AssigneeID = nil
			changed = true
		}
		if t.ReporterID != nil && *t.ReporterID == userID {
			t.ReporterID = nil
			changed = true
		}
		if changed {
			r.store.tasks[id] = t
		}
	}
	return nil
}
