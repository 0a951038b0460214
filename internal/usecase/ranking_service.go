package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	"github.com/pickemhq/pickem-pool/internal/domain/standings"
	"github.com/pickemhq/pickem-pool/internal/platform/cache"
)

// RankingService turns settled picks into the weekly leaderboard. It refuses
// to rank a week while any of its games is unsettled, so a leaderboard is
// never partial.
type RankingService struct {
	gameRepo   game.Repository
	pickRepo   pick.Repository
	weeklyRepo standings.WeeklyRepository
	tiebreak   *TiebreakEvaluator
	cacheStore *cache.Store
	now        func() time.Time
}

func NewRankingService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	weeklyRepo standings.WeeklyRepository,
	tiebreak *TiebreakEvaluator,
	cacheStore *cache.Store,
) *RankingService {
	return &RankingService{
		gameRepo:   gameRepo,
		pickRepo:   pickRepo,
		weeklyRepo: weeklyRepo,
		tiebreak:   tiebreak,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

// RankWeek recomputes and stores the weekly results for one week. It is a
// wholesale rebuild: the stored rows for the week are replaced, never
// patched, so re-running on unchanged input is a no-op.
func (s *RankingService) RankWeek(ctx context.Context, season, week int) ([]standings.WeeklyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.RankWeek")
	defer span.End()

	games, err := s.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list games for ranking: %w", err)
	}
	if !game.WeekComplete(games) {
		return nil, fmt.Errorf("%w: season %d week %d", ErrIncompleteWeek, season, week)
	}

	picks, err := s.pickRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks for ranking: %w", err)
	}

	results := s.buildResults(season, week, games, picks)
	if err := s.weeklyRepo.ReplaceWeek(ctx, season, week, results); err != nil {
		return nil, fmt.Errorf("replace weekly results: %w", err)
	}
	s.invalidateCache(ctx, season, week)
	return results, nil
}

func (s *RankingService) buildResults(season, week int, games []game.Game, picks []pick.Pick) []standings.WeeklyResult {
	correctByUser := make(map[string]int)
	tiebreakPickByUser := make(map[string]pick.Pick)
	tiebreakerGame, hasTiebreaker := game.TiebreakerOf(games)
	for _, item := range picks {
		if _, ok := correctByUser[item.UserID]; !ok {
			correctByUser[item.UserID] = 0
		}
		if item.Correctness == pick.CorrectnessCorrect {
			correctByUser[item.UserID]++
		}
		if hasTiebreaker && item.GameID == tiebreakerGame.ID {
			tiebreakPickByUser[item.UserID] = item
		}
	}
	if len(correctByUser) == 0 {
		return []standings.WeeklyResult{}
	}

	counts := make([]int, 0, len(correctByUser))
	usersByCount := make(map[int][]string)
	for userID, count := range correctByUser {
		if _, ok := usersByCount[count]; !ok {
			counts = append(counts, count)
		}
		usersByCount[count] = append(usersByCount[count], userID)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	calculatedAt := s.now().UTC()
	results := make([]standings.WeeklyResult, 0, len(correctByUser))
	rank := 0
	for groupIdx, count := range counts {
		users := usersByCount[count]
		sort.Strings(users)

		// Only the top count group is split further; the tiebreak rule exists
		// to pick the weekly winner, not to order the rest of the field.
		classes := [][]string{users}
		if groupIdx == 0 && len(users) > 1 && hasTiebreaker {
			classes = s.tiebreak.Classes(users, tiebreakPickByUser, tiebreakerGame)
		}

		for _, class := range classes {
			rank++
			for _, userID := range class {
				results = append(results, standings.WeeklyResult{
					Season:       season,
					Week:         week,
					UserID:       userID,
					CorrectCount: count,
					Rank:         rank,
					IsWinner:     rank == 1,
					CalculatedAt: calculatedAt,
				})
			}
		}
	}
	return results
}

// WeeklyLeaderboard returns the stored weekly results, computing them first
// when the week just completed and no rows exist yet.
func (s *RankingService) WeeklyLeaderboard(ctx context.Context, season, week int) ([]standings.WeeklyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.WeeklyLeaderboard")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		results, err := s.weeklyRepo.ListByWeek(ctx, season, week)
		if err != nil {
			return nil, fmt.Errorf("list weekly results: %w", err)
		}
		if len(results) == 0 {
			results, err = s.RankWeek(ctx, season, week)
			if err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	if s.cacheStore == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]standings.WeeklyResult), nil
	}

	value, err := s.cacheStore.GetOrLoad(ctx, leaderboardCacheKey(season, week), load)
	if err != nil {
		return nil, err
	}
	results, ok := value.([]standings.WeeklyResult)
	if !ok {
		return nil, fmt.Errorf("unexpected cached leaderboard type %T", value)
	}
	return results, nil
}

func (s *RankingService) invalidateCache(ctx context.Context, season, week int) {
	if s.cacheStore == nil {
		return
	}
	s.cacheStore.Delete(ctx, leaderboardCacheKey(season, week))
}

func leaderboardCacheKey(season, week int) string {
	return fmt.Sprintf("leaderboard:%d:%d", season, week)
}
