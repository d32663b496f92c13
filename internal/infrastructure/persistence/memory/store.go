// Package memory is the in-process storage backend. It implements the same
// repository interfaces as the Postgres backend and is used for demos and
// test isolation: every Store is an explicit object constructed per process
// or per test case, never a package-level singleton.
package memory

import (
	"context"
	"sync"

	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/ctgmao2/planwise/internal/domain/project"
	"github.com/ctgmao2/planwise/internal/domain/task"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/google/uuid"
)

// Store holds all entity maps behind one mutex. Insertion order is tracked
// per entity so list results are deterministic and stable sorts can honor
// the insertion-order tie-break.
type Store struct {
	mu sync.RWMutex

	users     map[uuid.UUID]user.User
	userOrder []uuid.UUID

	projects     map[uuid.UUID]project.Project
	projectOrder []uuid.UUID

	tasks     map[uuid.UUID]task.Task
	taskOrder []uuid.UUID

	activities []activity.Activity
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]user.User),
		projects: make(map[uuid.UUID]project.Project),
		tasks:    make(map[uuid.UUID]task.Task),
	}
}

// Transaction satisfies repository.TxRunner. The in-memory backend executes
// sequentially per request, so fn simply runs against the same store; there
// is no rollback on failure.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
