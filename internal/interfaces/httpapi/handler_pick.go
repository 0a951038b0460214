package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/pickemhq/pickem-pool/internal/usecase"
)

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	if h.pickService == nil {
		writeError(ctx, w, fmt.Errorf("%w: pick service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	season, week, err := seasonWeekParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if gameID == "" {
		writeError(ctx, w, fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput))
		return
	}

	var req submitPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.pickService.SubmitPick(ctx, usecase.SubmitPickInput{
		UserID:             principal.UserID,
		Season:             season,
		Week:               week,
		GameID:             gameID,
		SelectedSide:       req.SelectedSide,
		PredictedHomeScore: req.PredictedHomeScore,
		PredictedAwayScore: req.PredictedAwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed", "user_id", principal.UserID, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(saved))
}

func (h *Handler) ListMyWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyWeekPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	if h.pickService == nil {
		writeError(ctx, w, fmt.Errorf("%w: pick service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	season, week, err := seasonWeekParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.ListMyWeekPicks(ctx, principal.UserID, season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week picks failed", "user_id", principal.UserID, "season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]pickDTO, 0, len(picks))
	for _, item := range picks {
		out = append(out, pickToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListWeekGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekGames")
	defer span.End()

	if h.pickService == nil {
		writeError(ctx, w, fmt.Errorf("%w: pick service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	season, week, err := seasonWeekParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.pickService.ListWeekGames(ctx, season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week games failed", "season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameDTO, 0, len(games))
	for _, item := range games {
		out = append(out, gameToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
