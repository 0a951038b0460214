package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem-pool/internal/domain/pick"
)

type PickRepository struct {
	mu        sync.RWMutex
	picksByID map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{picksByID: make(map[string]pick.Pick)}
}

func (r *PickRepository) GetByUserAndGame(_ context.Context, userID, gameID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.picksByID {
		if item.UserID == userID && item.GameID == gameID {
			return item, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *PickRepository) ListByGame(_ context.Context, gameID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picksByID {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByWeek(_ context.Context, season, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picksByID {
		if item.Season == season && item.Week == week {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByUserAndWeek(_ context.Context, userID string, season, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picksByID {
		if item.UserID == userID && item.Season == season && item.Week == week {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) Upsert(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.picksByID[item.ID] = item
	return nil
}

func (r *PickRepository) ReplaceCorrectnessByGame(_ context.Context, gameID string, marks map[string]pick.Correctness) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.picksByID {
		if item.GameID != gameID {
			continue
		}
		mark, ok := marks[id]
		if !ok {
			mark = pick.CorrectnessUnknown
		}
		item.Correctness = mark
		r.picksByID[id] = item
	}
	return nil
}

func sortPicks(items []pick.Pick) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
