package memory

import (
	"context"

	"github.com/ctgmao2/planwise/internal/domain/project"
	"github.com/google/uuid"
)

type projectRepository struct {
	store *Store
}

// NewProjectRepository returns an in-memory project.Repository backed by the
// store.
func NewProjectRepository(store *Store) project.Repository {
	return &projectRepository{store: store}
}

func (r *projectRepository) Create(ctx context.Context, p *project.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.store.projects[p.ID] = *p
	r.store.projectOrder = append(r.store.projectOrder, p.ID)
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return &p, nil
}

func (r *projectRepository) FindAll(ctx context.Context, filter project.ProjectFilter) ([]project.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	projects := make([]project.Project, 0, len(r.store.projectOrder))
	for _, id := range r.store.projectOrder {
		p := r.store.projects[id]
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.ParentID != nil && (p.ParentID == nil || *p.ParentID != *filter.ParentID) {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *project.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.projects[p.ID]; !ok {
		return project.ErrProjectNotFound
	}
	r.store.projects[p.ID] = *p
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.projects[id]; !ok {
		return project.ErrProjectNotFound
	}
	delete(r.store.projects, id)
	r.store.projectOrder = removeID(r.store.projectOrder, id)
	return nil
}

func (r *projectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.projects[id]
	return ok, nil
}
