package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/domain/team"
	"github.com/pickemhq/pickem-pool/internal/platform/id"
)

// SettlementEnqueuer hands settlement work to a job queue instead of running
// it on the ingestion request path.
type SettlementEnqueuer interface {
	EnqueueSettle(ctx context.Context, season int) error
}

// FeedRecord is one authoritative result-feed row. Team labels arrive as
// whatever the feed uses (full names, abbreviations) and are resolved to
// canonical keys exactly once, here.
type FeedRecord struct {
	ExternalID   int64
	Season       int
	Week         int
	HomeTeam     string
	AwayTeam     string
	Kickoff      time.Time
	Slot         string
	HomeScore    *int
	AwayScore    *int
	IsFinal      bool
	IsTiebreaker bool
}

type IngestResult struct {
	Created  int      `json:"created"`
	Updated  int      `json:"updated"`
	Settled  int      `json:"settled"`
	Failed   int      `json:"failed"`
	Enqueued int      `json:"enqueued"`
	Messages []string `json:"messages,omitempty"`
}

// IngestionService applies feed records to the game store and kicks off
// settlement for games that just went final.
type IngestionService struct {
	gameRepo   game.Repository
	resolver   *team.Resolver
	idGen      id.Generator
	settlement *SettlementService
	enqueuer   SettlementEnqueuer
	now        func() time.Time
}

func NewIngestionService(
	gameRepo game.Repository,
	resolver *team.Resolver,
	idGen id.Generator,
	settlement *SettlementService,
	enqueuer SettlementEnqueuer,
) *IngestionService {
	return &IngestionService{
		gameRepo:   gameRepo,
		resolver:   resolver,
		idGen:      idGen,
		settlement: settlement,
		enqueuer:   enqueuer,
		now:        time.Now,
	}
}

// ApplyResults upserts the feed records and settles every game that has a
// final score afterwards. Records that fail validation are skipped and
// reported; storage failures abort the batch.
func (s *IngestionService) ApplyResults(ctx context.Context, records []FeedRecord) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ApplyResults")
	defer span.End()

	result := IngestResult{}
	touchedSeasons := make(map[int]struct{})

	for _, record := range records {
		item, created, err := s.applyOne(ctx, record)
		if err != nil {
			result.Failed++
			result.Messages = append(result.Messages, err.Error())
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}

		if !item.HasFinalScore() {
			continue
		}
		if s.enqueuer != nil {
			touchedSeasons[item.Season] = struct{}{}
			continue
		}
		if _, err := s.settlement.SettleGame(ctx, item.ID); err != nil {
			if IsNotReady(err) {
				continue
			}
			return result, fmt.Errorf("settle ingested game %s: %w", item.ID, err)
		}
		result.Settled++
	}

	for season := range touchedSeasons {
		if err := s.enqueuer.EnqueueSettle(ctx, season); err != nil {
			return result, fmt.Errorf("enqueue settlement for season %d: %w", season, err)
		}
		result.Enqueued++
	}
	return result, nil
}

func (s *IngestionService) applyOne(ctx context.Context, record FeedRecord) (game.Game, bool, error) {
	if record.ExternalID <= 0 {
		return game.Game{}, false, fmt.Errorf("%w: feed record requires a game id", ErrInvalidInput)
	}
	if record.Season <= 0 || record.Week <= 0 {
		return game.Game{}, false, fmt.Errorf("%w: feed record %d requires season and week", ErrInvalidInput, record.ExternalID)
	}
	if (record.HomeScore == nil) != (record.AwayScore == nil) {
		return game.Game{}, false, fmt.Errorf("%w: feed record %d has a partial score", ErrInvalidInput, record.ExternalID)
	}
	if record.IsFinal && record.HomeScore == nil {
		return game.Game{}, false, fmt.Errorf("%w: feed record %d is final without scores", ErrInvalidInput, record.ExternalID)
	}

	existing, found, err := s.gameRepo.GetByExternalID(ctx, record.ExternalID)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("get game by external id: %w", err)
	}

	item := existing
	if !found {
		homeKey, ok := s.resolver.Resolve(record.HomeTeam)
		if !ok {
			return game.Game{}, false, fmt.Errorf("%w: unknown home team %q", ErrInvalidInput, record.HomeTeam)
		}
		awayKey, ok := s.resolver.Resolve(record.AwayTeam)
		if !ok {
			return game.Game{}, false, fmt.Errorf("%w: unknown away team %q", ErrInvalidInput, record.AwayTeam)
		}
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return game.Game{}, false, fmt.Errorf("generate game id: %w", idErr)
		}
		item = game.Game{
			ID:         newID,
			Season:     record.Season,
			Week:       record.Week,
			ExternalID: record.ExternalID,
			HomeTeam:   homeKey,
			AwayTeam:   awayKey,
		}
	}

	// Participants and identity are fixed after creation; the feed may still
	// reschedule the kickoff, reclassify the slot, and finalize scores.
	if !record.Kickoff.IsZero() {
		item.KickoffAt = record.Kickoff.UTC()
	}
	if record.Slot != "" {
		item.Slot = game.ParseSlot(record.Slot)
	}
	item.HomeScore = record.HomeScore
	item.AwayScore = record.AwayScore
	item.IsFinal = record.IsFinal
	item.IsTiebreaker = record.IsTiebreaker
	item.UpdatedAt = s.now().UTC()

	if err := s.gameRepo.Upsert(ctx, item); err != nil {
		return game.Game{}, false, fmt.Errorf("upsert game %d: %w", record.ExternalID, err)
	}
	return item, !found, nil
}
