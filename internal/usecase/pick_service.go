package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	"github.com/pickemhq/pickem-pool/internal/platform/id"
)

// PickService handles pick writes and per-user pick queries. Every write is
// gated by the submission deadline at request time.
type PickService struct {
	gameRepo game.Repository
	pickRepo pick.Repository
	gate     *DeadlineGate
	idGen    id.Generator
	now      func() time.Time
}

func NewPickService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	gate *DeadlineGate,
	idGen id.Generator,
) *PickService {
	return &PickService{
		gameRepo: gameRepo,
		pickRepo: pickRepo,
		gate:     gate,
		idGen:    idGen,
		now:      time.Now,
	}
}

type SubmitPickInput struct {
	UserID             string
	Season             int
	Week               int
	GameID             string
	SelectedSide       string
	PredictedHomeScore *int
	PredictedAwayScore *int
}

// SubmitPick creates or replaces the caller's pick for one game. A pick on
// the week's tiebreaker game must carry a full score prediction; a pick on
// any other game must not.
func (s *PickService) SubmitPick(ctx context.Context, input SubmitPickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPick")
	defer span.End()

	if input.UserID == "" || input.GameID == "" {
		return pick.Pick{}, fmt.Errorf("%w: user id and game id are required", ErrInvalidInput)
	}
	side, ok := game.ParseSide(input.SelectedSide)
	if !ok {
		return pick.Pick{}, fmt.Errorf("%w: selected side must be home or away", ErrInvalidInput)
	}

	item, found, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get game for pick: %w", err)
	}
	if !found {
		return pick.Pick{}, fmt.Errorf("%w: game %s", ErrNotFound, input.GameID)
	}
	if item.Season != input.Season || item.Week != input.Week {
		return pick.Pick{}, fmt.Errorf("%w: game %s does not belong to season %d week %d", ErrInvalidInput, item.ID, input.Season, input.Week)
	}

	if !s.gate.CanSubmit(item, s.now().UTC()) {
		return pick.Pick{}, fmt.Errorf("%w: game %s", ErrDeadlinePassed, item.ID)
	}

	if item.IsTiebreaker {
		if input.PredictedHomeScore == nil || input.PredictedAwayScore == nil {
			return pick.Pick{}, fmt.Errorf("%w: tiebreaker pick requires a full score prediction", ErrInvalidInput)
		}
		if *input.PredictedHomeScore < 0 || *input.PredictedAwayScore < 0 {
			return pick.Pick{}, fmt.Errorf("%w: predicted scores must not be negative", ErrInvalidInput)
		}
	} else if input.PredictedHomeScore != nil || input.PredictedAwayScore != nil {
		return pick.Pick{}, fmt.Errorf("%w: score prediction is only accepted on the tiebreaker game", ErrInvalidInput)
	}

	existing, hasExisting, err := s.pickRepo.GetByUserAndGame(ctx, input.UserID, item.ID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get existing pick: %w", err)
	}

	result := pick.Pick{
		UserID:             input.UserID,
		GameID:             item.ID,
		Season:             item.Season,
		Week:               item.Week,
		SelectedSide:       side,
		PredictedHomeScore: input.PredictedHomeScore,
		PredictedAwayScore: input.PredictedAwayScore,
		Correctness:        pick.CorrectnessUnknown,
		UpdatedAt:          s.now().UTC(),
	}
	if hasExisting {
		result.ID = existing.ID
	} else {
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return pick.Pick{}, fmt.Errorf("generate pick id: %w", idErr)
		}
		result.ID = newID
	}

	if err := s.pickRepo.Upsert(ctx, result); err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick: %w", err)
	}
	return result, nil
}

// ListMyWeekPicks returns the caller's picks for one week with their
// correctness tri-state, ordered as stored.
func (s *PickService) ListMyWeekPicks(ctx context.Context, userID string, season, week int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListMyWeekPicks")
	defer span.End()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.pickRepo.ListByUserAndWeek(ctx, userID, season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks by user and week: %w", err)
	}
	return items, nil
}

// ListWeekGames returns the week's schedule and any final results.
func (s *PickService) ListWeekGames(ctx context.Context, season, week int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListWeekGames")
	defer span.End()

	items, err := s.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list games by week: %w", err)
	}
	return items, nil
}
