package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	"github.com/pickemhq/pickem-pool/internal/domain/standings"
	"github.com/pickemhq/pickem-pool/internal/platform/logging"
	"github.com/pickemhq/pickem-pool/internal/usecase"
)

type Handler struct {
	pickService       *usecase.PickService
	settlementService *usecase.SettlementService
	rankingService    *usecase.RankingService
	seasonService     *usecase.SeasonService
	ingestionService  *usecase.IngestionService
	feedSyncService   *usecase.FeedSyncService
	recomputeWorkers  int
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	pickService *usecase.PickService,
	settlementService *usecase.SettlementService,
	rankingService *usecase.RankingService,
	seasonService *usecase.SeasonService,
	ingestionService *usecase.IngestionService,
	feedSyncService *usecase.FeedSyncService,
	recomputeWorkers int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pickService:       pickService,
		settlementService: settlementService,
		rankingService:    rankingService,
		seasonService:     seasonService,
		ingestionService:  ingestionService,
		feedSyncService:   feedSyncService,
		recomputeWorkers:  recomputeWorkers,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func seasonWeekParams(r *http.Request) (int, int, error) {
	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil || season <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid season", usecase.ErrInvalidInput)
	}
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil || week <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid week", usecase.ErrInvalidInput)
	}
	return season, week, nil
}

func seasonParam(r *http.Request) (int, error) {
	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil || season <= 0 {
		return 0, fmt.Errorf("%w: invalid season", usecase.ErrInvalidInput)
	}
	return season, nil
}

type submitPickRequest struct {
	SelectedSide       string `json:"selected_side" validate:"required,oneof=home away"`
	PredictedHomeScore *int   `json:"predicted_home_score" validate:"omitempty,gte=0"`
	PredictedAwayScore *int   `json:"predicted_away_score" validate:"omitempty,gte=0"`
}

type ingestResultsRequest struct {
	Records []ingestResultRecord `json:"records" validate:"required,min=1,dive"`
}

type ingestResultRecord struct {
	GameID       int64  `json:"game_id" validate:"required,gt=0"`
	Season       int    `json:"season" validate:"required,gt=0"`
	Week         int    `json:"week" validate:"required,gt=0"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Kickoff      string `json:"kickoff" validate:"omitempty"`
	Slot         string `json:"slot"`
	HomeScore    *int   `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore    *int   `json:"away_score" validate:"omitempty,gte=0"`
	IsFinal      bool   `json:"is_final"`
	IsTiebreaker bool   `json:"is_tiebreaker"`
}

type settleJobRequest struct {
	Season int `json:"season" validate:"required,gt=0"`
}

type recomputeJobRequest struct {
	Season     int `json:"season" validate:"required,gt=0"`
	MaxWorkers int `json:"max_workers" validate:"omitempty,gte=1,lte=64"`
}

type feedSyncJobRequest struct {
	Season int   `json:"season" validate:"required,gt=0"`
	Weeks  []int `json:"weeks" validate:"required,min=1,dive,gt=0"`
}

type gameDTO struct {
	ID           string `json:"id"`
	Season       int    `json:"season"`
	Week         int    `json:"week"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	KickoffAt    string `json:"kickoff_at,omitempty"`
	Slot         string `json:"slot"`
	HomeScore    *int   `json:"home_score,omitempty"`
	AwayScore    *int   `json:"away_score,omitempty"`
	IsFinal      bool   `json:"is_final"`
	IsTiebreaker bool   `json:"is_tiebreaker"`
}

func gameToDTO(item game.Game) gameDTO {
	dto := gameDTO{
		ID:           item.ID,
		Season:       item.Season,
		Week:         item.Week,
		HomeTeam:     item.HomeTeam,
		AwayTeam:     item.AwayTeam,
		Slot:         string(item.Slot),
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		IsFinal:      item.IsFinal,
		IsTiebreaker: item.IsTiebreaker,
	}
	if !item.KickoffAt.IsZero() {
		dto.KickoffAt = item.KickoffAt.UTC().Format(time.RFC3339)
	}
	return dto
}

type pickDTO struct {
	ID                 string `json:"id"`
	GameID             string `json:"game_id"`
	Season             int    `json:"season"`
	Week               int    `json:"week"`
	SelectedSide       string `json:"selected_side"`
	PredictedHomeScore *int   `json:"predicted_home_score,omitempty"`
	PredictedAwayScore *int   `json:"predicted_away_score,omitempty"`
	Correctness        string `json:"correctness"`
}

func pickToDTO(item pick.Pick) pickDTO {
	return pickDTO{
		ID:                 item.ID,
		GameID:             item.GameID,
		Season:             item.Season,
		Week:               item.Week,
		SelectedSide:       string(item.SelectedSide),
		PredictedHomeScore: item.PredictedHomeScore,
		PredictedAwayScore: item.PredictedAwayScore,
		Correctness:        string(item.Correctness),
	}
}

type weeklyResultDTO struct {
	UserID       string `json:"user_id"`
	CorrectCount int    `json:"correct_count"`
	Rank         int    `json:"rank"`
	IsWinner     bool   `json:"is_winner"`
}

func weeklyResultToDTO(item standings.WeeklyResult) weeklyResultDTO {
	return weeklyResultDTO{
		UserID:       item.UserID,
		CorrectCount: item.CorrectCount,
		Rank:         item.Rank,
		IsWinner:     item.IsWinner,
	}
}

type seasonStandingDTO struct {
	UserID     string `json:"user_id"`
	WeeklyWins int    `json:"weekly_wins"`
	Rank       int    `json:"rank"`
}

func seasonStandingToDTO(item standings.SeasonStanding) seasonStandingDTO {
	return seasonStandingDTO{
		UserID:     item.UserID,
		WeeklyWins: item.WeeklyWins,
		Rank:       item.Rank,
	}
}
