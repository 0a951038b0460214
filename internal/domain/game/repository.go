package game

import "context"

// Repository is the result store the scoring pipeline reads from.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	GetByExternalID(ctx context.Context, externalID int64) (Game, bool, error)
	ListByWeek(ctx context.Context, season, week int) ([]Game, error)
	ListBySeason(ctx context.Context, season int) ([]Game, error)
	Upsert(ctx context.Context, item Game) error
}
