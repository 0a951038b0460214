package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	"github.com/pickemhq/pickem-pool/internal/domain/standings"
)

type stubGameRepository struct {
	mu   sync.Mutex
	byID map[string]game.Game
}

func newStubGameRepository(games ...game.Game) *stubGameRepository {
	repo := &stubGameRepository{byID: make(map[string]game.Game)}
	for _, item := range games {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubGameRepository) GetByID(_ context.Context, id string) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[id]
	return item, ok, nil
}

func (r *stubGameRepository) GetByExternalID(_ context.Context, externalID int64) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.byID {
		if item.ExternalID == externalID {
			return item, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (r *stubGameRepository) ListByWeek(_ context.Context, season, week int) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []game.Game
	for _, item := range r.byID {
		if item.Season == season && item.Week == week {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *stubGameRepository) ListBySeason(_ context.Context, season int) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []game.Game
	for _, item := range r.byID {
		if item.Season == season {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *stubGameRepository) Upsert(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

type stubPickRepository struct {
	mu   sync.Mutex
	byID map[string]pick.Pick
}

func newStubPickRepository(picks ...pick.Pick) *stubPickRepository {
	repo := &stubPickRepository{byID: make(map[string]pick.Pick)}
	for _, item := range picks {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *stubPickRepository) GetByUserAndGame(_ context.Context, userID, gameID string) (pick.Pick, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.byID {
		if item.UserID == userID && item.GameID == gameID {
			return item, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *stubPickRepository) ListByGame(_ context.Context, gameID string) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []pick.Pick
	for _, item := range r.byID {
		if item.GameID == gameID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *stubPickRepository) ListByWeek(_ context.Context, season, week int) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []pick.Pick
	for _, item := range r.byID {
		if item.Season == season && item.Week == week {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *stubPickRepository) ListByUserAndWeek(_ context.Context, userID string, season, week int) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []pick.Pick
	for _, item := range r.byID {
		if item.UserID == userID && item.Season == season && item.Week == week {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *stubPickRepository) Upsert(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

func (r *stubPickRepository) ReplaceCorrectnessByGame(_ context.Context, gameID string, marks map[string]pick.Correctness) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.byID {
		if item.GameID != gameID {
			continue
		}
		mark, ok := marks[id]
		if !ok {
			mark = pick.CorrectnessUnknown
		}
		item.Correctness = mark
		r.byID[id] = item
	}
	return nil
}

func (r *stubPickRepository) get(id string) (pick.Pick, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[id]
	return item, ok
}

type weekKey struct {
	season int
	week   int
}

type stubWeeklyRepository struct {
	mu     sync.Mutex
	byWeek map[weekKey][]standings.WeeklyResult
}

func newStubWeeklyRepository() *stubWeeklyRepository {
	return &stubWeeklyRepository{byWeek: make(map[weekKey][]standings.WeeklyResult)}
}

func (r *stubWeeklyRepository) ListByWeek(_ context.Context, season, week int) ([]standings.WeeklyResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.byWeek[weekKey{season, week}]
	out := make([]standings.WeeklyResult, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *stubWeeklyRepository) ListBySeason(_ context.Context, season int) ([]standings.WeeklyResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []standings.WeeklyResult
	keys := make([]weekKey, 0, len(r.byWeek))
	for key := range r.byWeek {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].week < keys[j].week })
	for _, key := range keys {
		if key.season == season {
			out = append(out, r.byWeek[key]...)
		}
	}
	return out, nil
}

func (r *stubWeeklyRepository) ReplaceWeek(_ context.Context, season, week int, results []standings.WeeklyResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]standings.WeeklyResult, len(results))
	copy(stored, results)
	r.byWeek[weekKey{season, week}] = stored
	return nil
}

type stubSeasonRepository struct {
	mu       sync.Mutex
	bySeason map[int][]standings.SeasonStanding
}

func newStubSeasonRepository() *stubSeasonRepository {
	return &stubSeasonRepository{bySeason: make(map[int][]standings.SeasonStanding)}
}

func (r *stubSeasonRepository) ListBySeason(_ context.Context, season int) ([]standings.SeasonStanding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.bySeason[season]
	out := make([]standings.SeasonStanding, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *stubSeasonRepository) ReplaceSeason(_ context.Context, season int, rows []standings.SeasonStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]standings.SeasonStanding, len(rows))
	copy(stored, rows)
	r.bySeason[season] = stored
	return nil
}

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}
