package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemhq/pickem-pool/internal/domain/standings"
)

type weekKey struct {
	season int
	week   int
}

type WeeklyResultRepository struct {
	mu         sync.RWMutex
	rowsByWeek map[weekKey][]standings.WeeklyResult
}

func NewWeeklyResultRepository() *WeeklyResultRepository {
	return &WeeklyResultRepository{rowsByWeek: make(map[weekKey][]standings.WeeklyResult)}
}

func (r *WeeklyResultRepository) ListByWeek(_ context.Context, season, week int) ([]standings.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rowsByWeek[weekKey{season: season, week: week}]
	out := make([]standings.WeeklyResult, 0, len(rows))
	out = append(out, rows...)
	return out, nil
}

func (r *WeeklyResultRepository) ListBySeason(_ context.Context, season int) ([]standings.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.WeeklyResult, 0)
	for key, rows := range r.rowsByWeek {
		if key.season == season {
			out = append(out, rows...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *WeeklyResultRepository) ReplaceWeek(_ context.Context, season, week int, results []standings.WeeklyResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]standings.WeeklyResult, 0, len(results))
	rows = append(rows, results...)
	r.rowsByWeek[weekKey{season: season, week: week}] = rows
	return nil
}

type SeasonStandingRepository struct {
	mu           sync.RWMutex
	rowsBySeason map[int][]standings.SeasonStanding
}

func NewSeasonStandingRepository() *SeasonStandingRepository {
	return &SeasonStandingRepository{rowsBySeason: make(map[int][]standings.SeasonStanding)}
}

func (r *SeasonStandingRepository) ListBySeason(_ context.Context, season int) ([]standings.SeasonStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rowsBySeason[season]
	out := make([]standings.SeasonStanding, 0, len(rows))
	out = append(out, rows...)
	return out, nil
}

func (r *SeasonStandingRepository) ReplaceSeason(_ context.Context, season int, rows []standings.SeasonStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]standings.SeasonStanding, 0, len(rows))
	out = append(out, rows...)
	r.rowsBySeason[season] = out
	return nil
}
