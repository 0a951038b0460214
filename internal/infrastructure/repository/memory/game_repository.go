package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
)

type GameRepository struct {
	mu        sync.RWMutex
	gamesByID map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	gamesByID := make(map[string]game.Game, len(games))
	for _, item := range games {
		gamesByID[item.ID] = item
	}

	return &GameRepository{gamesByID: gamesByID}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.gamesByID[gameID]
	return item, ok, nil
}

func (r *GameRepository) GetByExternalID(_ context.Context, externalID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.gamesByID {
		if item.ExternalID == externalID {
			return item, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (r *GameRepository) ListByWeek(_ context.Context, season, week int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.gamesByID {
		if item.Season == season && item.Week == week {
			out = append(out, item)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListBySeason(_ context.Context, season int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.gamesByID {
		if item.Season == season {
			out = append(out, item)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gamesByID[item.ID] = item
	return nil
}

func sortGames(items []game.Game) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}
