package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	"github.com/pickemhq/pickem-pool/internal/platform/resilience"
)

// SettlementService scores picks once games go final. Settlement is a pure
// recompute from the current stored state: re-running it on unchanged input
// is a no-op, and running it after a score correction converges on the
// corrected marks.
type SettlementService struct {
	gameRepo       game.Repository
	pickRepo       pick.Repository
	ranking        *RankingService
	season         *SeasonService
	now            func() time.Time
	ensureFlight   resilience.SingleFlight
	ensureMu       sync.Mutex
	lastEnsureAt   map[int]time.Time
	ensureInterval time.Duration
}

const defaultSettlementEnsureInterval = 30 * time.Second

func NewSettlementService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	ranking *RankingService,
	season *SeasonService,
) *SettlementService {
	return &SettlementService{
		gameRepo:       gameRepo,
		pickRepo:       pickRepo,
		ranking:        ranking,
		season:         season,
		now:            time.Now,
		lastEnsureAt:   make(map[int]time.Time),
		ensureInterval: defaultSettlementEnsureInterval,
	}
}

// SettleGame recomputes every correctness mark for one game and, when the
// game's week is fully final, refreshes the weekly ranking and the season
// standings. Returns the number of picks marked.
func (s *SettlementService) SettleGame(ctx context.Context, gameID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleGame")
	defer span.End()

	item, found, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("get game for settlement: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	marked, err := s.settleOne(ctx, item)
	if err != nil {
		return 0, err
	}

	if err := s.refreshWeekIfComplete(ctx, item.Season, item.Week); err != nil {
		return marked, err
	}
	return marked, nil
}

func (s *SettlementService) settleOne(ctx context.Context, item game.Game) (int, error) {
	winner, ok := item.Winner()
	if !ok {
		return 0, fmt.Errorf("%w: game %s", ErrGameNotFinal, item.ID)
	}

	picks, err := s.pickRepo.ListByGame(ctx, item.ID)
	if err != nil {
		return 0, fmt.Errorf("list picks for settlement: %w", err)
	}
	if len(picks) == 0 {
		return 0, nil
	}

	// A drawn game has winner none, which matches no pick side, so every
	// pick comes out incorrect.
	marks := make(map[string]pick.Correctness, len(picks))
	for _, p := range picks {
		if p.SelectedSide == winner {
			marks[p.ID] = pick.CorrectnessCorrect
		} else {
			marks[p.ID] = pick.CorrectnessIncorrect
		}
	}

	if err := s.pickRepo.ReplaceCorrectnessByGame(ctx, item.ID, marks); err != nil {
		return 0, fmt.Errorf("replace correctness marks: %w", err)
	}
	return len(marks), nil
}

func (s *SettlementService) refreshWeekIfComplete(ctx context.Context, season, week int) error {
	games, err := s.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return fmt.Errorf("list games for week refresh: %w", err)
	}
	if !game.WeekComplete(games) {
		return nil
	}

	if _, err := s.ranking.RankWeek(ctx, season, week); err != nil {
		return fmt.Errorf("rank week after settlement: %w", err)
	}
	if _, err := s.season.AggregateSeason(ctx, season); err != nil {
		return fmt.Errorf("aggregate season after settlement: %w", err)
	}
	return nil
}

// SettleSeason settles every final game of the season in week order, then
// refreshes rankings for each completed week and the season standings.
func (s *SettlementService) SettleSeason(ctx context.Context, season int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleSeason")
	defer span.End()

	games, err := s.gameRepo.ListBySeason(ctx, season)
	if err != nil {
		return fmt.Errorf("list games for season settlement: %w", err)
	}

	weeks := make(map[int][]game.Game)
	for _, item := range games {
		weeks[item.Week] = append(weeks[item.Week], item)
	}
	weekNumbers := make([]int, 0, len(weeks))
	for week := range weeks {
		weekNumbers = append(weekNumbers, week)
	}
	sort.Ints(weekNumbers)

	seasonTouched := false
	for _, week := range weekNumbers {
		weekGames := weeks[week]
		for _, item := range weekGames {
			if !item.HasFinalScore() {
				continue
			}
			if _, err := s.settleOne(ctx, item); err != nil {
				return err
			}
		}
		if !game.WeekComplete(weekGames) {
			continue
		}
		if _, err := s.ranking.RankWeek(ctx, season, week); err != nil {
			return fmt.Errorf("rank week %d: %w", week, err)
		}
		seasonTouched = true
	}

	if seasonTouched {
		if _, err := s.season.AggregateSeason(ctx, season); err != nil {
			return fmt.Errorf("aggregate season: %w", err)
		}
	}
	return nil
}

// EnsureSeasonUpToDate runs a full season settlement sweep, deduplicated via
// singleflight and rate limited per season.
func (s *SettlementService) EnsureSeasonUpToDate(ctx context.Context, season int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.EnsureSeasonUpToDate")
	defer span.End()

	now := s.now().UTC()
	if s.shouldSkipEnsure(season, now) {
		return nil
	}

	key := fmt.Sprintf("settlement:ensure:%d", season)
	_, err, _ := s.ensureFlight.Do(key, func() (any, error) {
		runNow := s.now().UTC()
		if s.shouldSkipEnsure(season, runNow) {
			return nil, nil
		}

		if runErr := s.SettleSeason(ctx, season); runErr != nil {
			return nil, runErr
		}
		s.markEnsure(season, runNow)
		return nil, nil
	})
	return err
}

func (s *SettlementService) shouldSkipEnsure(season int, now time.Time) bool {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()

	last, ok := s.lastEnsureAt[season]
	if !ok {
		return false
	}
	return now.Sub(last) < s.ensureInterval
}

func (s *SettlementService) markEnsure(season int, now time.Time) {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	s.lastEnsureAt[season] = now
}

type RecomputeResult struct {
	GameCount    int `json:"game_count"`
	SettledCount int `json:"settled_count"`
	SkippedCount int `json:"skipped_count"`
	FailedCount  int `json:"failed_count"`
	WeekCount    int `json:"week_count"`
	WorkerCount  int `json:"worker_count"`
}

const defaultRecomputeWorkers = 8

// RecomputeSeason re-settles every game of the season on a worker pool and
// rebuilds all derived tables. Per-game settlement is independent (one
// transaction per game), so games can be scored concurrently; the weekly and
// season rebuilds run once afterwards.
func (s *SettlementService) RecomputeSeason(ctx context.Context, season, maxWorkers int) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.RecomputeSeason")
	defer span.End()

	games, err := s.gameRepo.ListBySeason(ctx, season)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list games for recompute: %w", err)
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = defaultRecomputeWorkers
	}
	if workerCount > len(games) && len(games) > 0 {
		workerCount = len(games)
	}

	result := RecomputeResult{GameCount: len(games), WorkerCount: workerCount}
	if len(games) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var settledCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	var errMu sync.Mutex
	var firstErr error

	var workers sync.WaitGroup
	for _, item := range games {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if !item.HasFinalScore() {
				skippedCount.Add(1)
				return
			}
			if _, runErr := s.settleOne(ctx, item); runErr != nil {
				failedCount.Add(1)
				errMu.Lock()
				if firstErr == nil {
					firstErr = runErr
				}
				errMu.Unlock()
				return
			}
			settledCount.Add(1)
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.SettledCount = int(settledCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	if firstErr != nil {
		return result, firstErr
	}

	weeks := make(map[int][]game.Game)
	for _, item := range games {
		weeks[item.Week] = append(weeks[item.Week], item)
	}
	seasonTouched := false
	for week, weekGames := range weeks {
		if !game.WeekComplete(weekGames) {
			continue
		}
		if _, err := s.ranking.RankWeek(ctx, season, week); err != nil {
			return result, fmt.Errorf("rank week %d: %w", week, err)
		}
		result.WeekCount++
		seasonTouched = true
	}
	if seasonTouched {
		if _, err := s.season.AggregateSeason(ctx, season); err != nil {
			return result, fmt.Errorf("aggregate season: %w", err)
		}
	}
	return result, nil
}

// IsNotReady reports whether err is one of the "retry later" settlement
// results rather than a failure.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrGameNotFinal) || errors.Is(err, ErrIncompleteWeek)
}
