package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/pickemhq/pickem-pool/internal/usecase"
)

func (h *Handler) IngestResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestResults")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingestion service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req ingestResultsRequest
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

	records := make([]usecase.FeedRecord, 0, len(req.Records))
	for _, item := range req.Records {
		var kickoff time.Time
		rawKickoff := strings.TrimSpace(item.Kickoff)
		if rawKickoff != "" {
			parsed, err := time.Parse(time.RFC3339, rawKickoff)
			if err != nil {
				writeError(ctx, w, fmt.Errorf("%w: invalid kickoff %q: %v", usecase.ErrInvalidInput, item.Kickoff, err))
				return
			}
			kickoff = parsed
		}

		records = append(records, usecase.FeedRecord{
			ExternalID:   item.GameID,
			Season:       item.Season,
			Week:         item.Week,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			Kickoff:      kickoff,
			Slot:         item.Slot,
			HomeScore:    item.HomeScore,
			AwayScore:    item.AwayScore,
			IsFinal:      item.IsFinal,
			IsTiebreaker: item.IsTiebreaker,
		})
	}

	result, err := h.ingestionService.ApplyResults(ctx, records)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest results failed", "records", len(records), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
