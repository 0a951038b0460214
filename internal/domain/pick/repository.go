package pick

import "context"

type Repository interface {
	GetByUserAndGame(ctx context.Context, userID, gameID string) (Pick, bool, error)
	ListByGame(ctx context.Context, gameID string) ([]Pick, error)
	ListByWeek(ctx context.Context, season, week int) ([]Pick, error)
	ListByUserAndWeek(ctx context.Context, userID string, season, week int) ([]Pick, error)
	Upsert(ctx context.Context, item Pick) error

	// ReplaceCorrectnessByGame rewrites the settlement marks of every pick on
	// one game inside a single transaction, so a crash mid-settlement cannot
	// leave the game half scored.
	ReplaceCorrectnessByGame(ctx context.Context, gameID string, marks map[string]Correctness) error
}
