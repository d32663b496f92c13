package memory

import (
	"context"
	"sort"

	"github.com/ctgmao2/planwise/internal/domain/activity"
	"github.com/google/uuid"
)

type activityRepository struct {
	store *Store
}

// NewActivityRepository returns an in-memory activity.Repository backed by
// the store.
func NewActivityRepository(store *Store) activity.Repository {
	return &activityRepository{store: store}
}

func (r *activityRepository) Create(ctx context.Context, a *activity.Activity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	// The log is append-only, so the slice length is a valid insertion counter.
	a.Seq = int64(len(r.store.activities)) + 1
	r.store.activities = append(r.store.activities, *a)
	return nil
}

func (r *activityRepository) FindRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	return r.FindAll(ctx, activity.ActivityFilter{Limit: limit})
}

func (r *activityRepository) FindAll(ctx context.Context, filter activity.ActivityFilter) ([]activity.Activity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]activity.Activity, 0, len(r.store.activities))
	for _, a := range r.store.activities {
		if filter.UserID != nil && (a.UserID == nil || *a.UserID != *filter.UserID) {
			continue
		}
		if filter.TaskID != nil && (a.TaskID == nil || *a.TaskID != *filter.TaskID) {
			continue
		}
		if filter.ProjectID != nil && (a.ProjectID == nil || *a.ProjectID != *filter.ProjectID) {
			continue
		}
		matched = append(matched, a)
	}

	// Newest first; the stable sort keeps insertion order on equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}
