package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-pool/internal/domain/standings"
	qb "github.com/pickemhq/pickem-pool/internal/platform/querybuilder"
)

type WeeklyResultRepository struct {
	db *sqlx.DB
}

func NewWeeklyResultRepository(db *sqlx.DB) *WeeklyResultRepository {
	return &WeeklyResultRepository{db: db}
}

func (r *WeeklyResultRepository) ListByWeek(ctx context.Context, season, week int) ([]standings.WeeklyResult, error) {
	query, args, err := qb.Select("*").From("weekly_results").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("rank", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly results by week query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly results by week: %w", err)
	}

	out := make([]standings.WeeklyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *WeeklyResultRepository) ListBySeason(ctx context.Context, season int) ([]standings.WeeklyResult, error) {
	query, args, err := qb.Select("*").From("weekly_results").
		Where(qb.Eq("season", season)).
		OrderBy("week", "rank", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly results by season query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly results by season: %w", err)
	}

	out := make([]standings.WeeklyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *WeeklyResultRepository) ReplaceWeek(ctx context.Context, season, week int, results []standings.WeeklyResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for weekly results replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery := `DELETE FROM weekly_results WHERE season = $1 AND week = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, season, week); err != nil {
		return fmt.Errorf("delete weekly results: %w", err)
	}

	if len(results) > 0 {
		builder := qb.InsertInto("weekly_results").
			Columns("season", "week", "user_id", "correct_count", "rank", "is_winner", "calculated_at")
		for _, row := range results {
			builder = builder.Values(row.Season, row.Week, row.UserID, row.CorrectCount, row.Rank, row.IsWinner, row.CalculatedAt)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert weekly results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert weekly results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit weekly results replace: %w", err)
	}
	return nil
}

type SeasonStandingRepository struct {
	db *sqlx.DB
}

func NewSeasonStandingRepository(db *sqlx.DB) *SeasonStandingRepository {
	return &SeasonStandingRepository{db: db}
}

func (r *SeasonStandingRepository) ListBySeason(ctx context.Context, season int) ([]standings.SeasonStanding, error) {
	query, args, err := qb.Select("*").From("season_standings").
		Where(qb.Eq("season", season)).
		OrderBy("rank", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season standings query: %w", err)
	}

	var rows []seasonStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season standings: %w", err)
	}

	out := make([]standings.SeasonStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonStandingRepository) ReplaceSeason(ctx context.Context, season int, rows []standings.SeasonStanding) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for season standings replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery := `DELETE FROM season_standings WHERE season = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, season); err != nil {
		return fmt.Errorf("delete season standings: %w", err)
	}

	if len(rows) > 0 {
		builder := qb.InsertInto("season_standings").
			Columns("season", "user_id", "weekly_wins", "rank", "calculated_at")
		for _, row := range rows {
			builder = builder.Values(row.Season, row.UserID, row.WeeklyWins, row.Rank, row.CalculatedAt)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert season standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert season standings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit season standings replace: %w", err)
	}
	return nil
}
