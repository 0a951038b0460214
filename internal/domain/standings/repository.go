package standings

import "context"

type WeeklyRepository interface {
	ListByWeek(ctx context.Context, season, week int) ([]WeeklyResult, error)
	ListBySeason(ctx context.Context, season int) ([]WeeklyResult, error)
	ReplaceWeek(ctx context.Context, season, week int, results []WeeklyResult) error
}

type SeasonRepository interface {
	ListBySeason(ctx context.Context, season int) ([]SeasonStanding, error)
	ReplaceSeason(ctx context.Context, season int, rows []SeasonStanding) error
}
