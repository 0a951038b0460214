package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/standings"
	"github.com/pickemhq/pickem-pool/internal/platform/cache"
)

// SeasonService folds weekly results into season standings. Standings are a
// pure function of the stored weekly results and are always rebuilt
// wholesale, so recomputing after any weekly change matches a full rebuild.
type SeasonService struct {
	weeklyRepo standings.WeeklyRepository
	seasonRepo standings.SeasonRepository
	cacheStore *cache.Store
	now        func() time.Time
}

func NewSeasonService(
	weeklyRepo standings.WeeklyRepository,
	seasonRepo standings.SeasonRepository,
	cacheStore *cache.Store,
) *SeasonService {
	return &SeasonService{
		weeklyRepo: weeklyRepo,
		seasonRepo: seasonRepo,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

// AggregateSeason recomputes and stores the season standings from all stored
// weekly results.
func (s *SeasonService) AggregateSeason(ctx context.Context, season int) ([]standings.SeasonStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.AggregateSeason")
	defer span.End()

	weeklies, err := s.weeklyRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list weekly results for season: %w", err)
	}

	rows := s.buildStandings(season, weeklies)
	if err := s.seasonRepo.ReplaceSeason(ctx, season, rows); err != nil {
		return nil, fmt.Errorf("replace season standings: %w", err)
	}
	if s.cacheStore != nil {
		s.cacheStore.Delete(ctx, standingsCacheKey(season))
	}
	return rows, nil
}

func (s *SeasonService) buildStandings(season int, weeklies []standings.WeeklyResult) []standings.SeasonStanding {
	winsByUser := make(map[string]int)
	for _, item := range weeklies {
		if _, ok := winsByUser[item.UserID]; !ok {
			winsByUser[item.UserID] = 0
		}
		if item.IsWinner {
			winsByUser[item.UserID]++
		}
	}
	if len(winsByUser) == 0 {
		return []standings.SeasonStanding{}
	}

	calculatedAt := s.now().UTC()
	rows := make([]standings.SeasonStanding, 0, len(winsByUser))
	for userID, wins := range winsByUser {
		rows = append(rows, standings.SeasonStanding{
			Season:       season,
			UserID:       userID,
			WeeklyWins:   wins,
			CalculatedAt: calculatedAt,
		})
	}
	// User ID is a secondary sort for stable output only; it never breaks a
	// rank tie.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WeeklyWins != rows[j].WeeklyWins {
			return rows[i].WeeklyWins > rows[j].WeeklyWins
		}
		return rows[i].UserID < rows[j].UserID
	})

	rank := 0
	lastWins := -1
	for i := range rows {
		if rows[i].WeeklyWins != lastWins {
			rank++
			lastWins = rows[i].WeeklyWins
		}
		rows[i].Rank = rank
	}
	return rows
}

// SeasonStandings returns the stored standings, rebuilding them when no rows
// exist yet.
func (s *SeasonService) SeasonStandings(ctx context.Context, season int) ([]standings.SeasonStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SeasonStandings")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		rows, err := s.seasonRepo.ListBySeason(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("list season standings: %w", err)
		}
		if len(rows) == 0 {
			rows, err = s.AggregateSeason(ctx, season)
			if err != nil {
				return nil, err
			}
		}
		return rows, nil
	}

	if s.cacheStore == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]standings.SeasonStanding), nil
	}

	value, err := s.cacheStore.GetOrLoad(ctx, standingsCacheKey(season), load)
	if err != nil {
		return nil, err
	}
	rows, ok := value.([]standings.SeasonStanding)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", value)
	}
	return rows, nil
}

func standingsCacheKey(season int) string {
	return fmt.Sprintf("standings:%d", season)
}
