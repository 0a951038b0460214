package usecase

import (
	"context"
	"fmt"
)

// ScoreFeedClient fetches authoritative results from the upstream feed.
type ScoreFeedClient interface {
	FetchWeeks(ctx context.Context, season int, weeks []int) ([]FeedRecord, error)
}

// FeedSyncService pulls results from the score feed and runs them through
// ingestion. It is the pull-based counterpart to the push endpoint.
type FeedSyncService struct {
	feed      ScoreFeedClient
	ingestion *IngestionService
}

func NewFeedSyncService(feed ScoreFeedClient, ingestion *IngestionService) *FeedSyncService {
	return &FeedSyncService{feed: feed, ingestion: ingestion}
}

// SyncWeeks fetches the given weeks from the feed and applies them.
func (s *FeedSyncService) SyncWeeks(ctx context.Context, season int, weeks []int) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.SyncWeeks")
	defer span.End()

	if s.feed == nil {
		return IngestResult{}, fmt.Errorf("%w: no score feed configured", ErrDependencyUnavailable)
	}
	if season <= 0 || len(weeks) == 0 {
		return IngestResult{}, fmt.Errorf("%w: season and weeks are required", ErrInvalidInput)
	}

	records, err := s.feed.FetchWeeks(ctx, season, weeks)
	if err != nil {
		return IngestResult{}, fmt.Errorf("fetch weeks from score feed: %w", err)
	}
	return s.ingestion.ApplyResults(ctx, records)
}
