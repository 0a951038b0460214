package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pickemhq/pickem-pool/internal/usecase"
)

func (h *Handler) GetWeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyLeaderboard")
	defer span.End()

	if h.rankingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ranking service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	season, week, err := seasonWeekParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.settlementService != nil {
		if err := h.settlementService.EnsureSeasonUpToDate(ctx, season); err != nil && !usecase.IsNotReady(err) {
			h.logger.WarnContext(ctx, "ensure season up to date failed", "season", season, "error", err)
		}
	}

	rows, err := h.rankingService.WeeklyLeaderboard(ctx, season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "weekly leaderboard failed", "season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]weeklyResultDTO, 0, len(rows))
	for _, item := range rows {
		out = append(out, weeklyResultToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStandings")
	defer span.End()

	if h.seasonService == nil {
		writeError(ctx, w, fmt.Errorf("%w: season service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	season, err := seasonParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.settlementService != nil {
		if err := h.settlementService.EnsureSeasonUpToDate(ctx, season); err != nil && !usecase.IsNotReady(err) {
			h.logger.WarnContext(ctx, "ensure season up to date failed", "season", season, "error", err)
		}
	}

	rows, err := h.seasonService.SeasonStandings(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "season standings failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonStandingDTO, 0, len(rows))
	for _, item := range rows {
		out = append(out, seasonStandingToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
