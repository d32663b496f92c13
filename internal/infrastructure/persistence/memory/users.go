package memory

import (
	"context"

	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

// NewUserRepository returns an in-memory user.Repository backed by the store.
func NewUserRepository(store *Store) user.Repository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.store.users[u.ID] = *u
	r.store.userOrder = append(r.store.userOrder, u.ID)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.userOrder {
		if u := r.store.users[id]; u.Username == username {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepository) FindAll(ctx context.Context) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]user.User, 0, len(r.store.userOrder))
	for _, id := range r.store.userOrder {
		users = append(users, r.store.users[id])
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.store.users[u.ID] = *u
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.store.users, id)
	r.store.userOrder = removeID(r.store.userOrder, id)
	return nil
}
