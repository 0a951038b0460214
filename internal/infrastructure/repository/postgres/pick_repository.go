package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-pool/internal/domain/pick"
	qb "github.com/pickemhq/pickem-pool/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetByUserAndGame(ctx context.Context, userID, gameID string) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("game_id", gameID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build select pick by user and game query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("select pick by user and game: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PickRepository) ListByGame(ctx context.Context, gameID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by game query: %w", err)
	}

	return r.selectPicks(ctx, query, args, "select picks by game")
}

func (r *PickRepository) ListByWeek(ctx context.Context, season, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by week query: %w", err)
	}

	return r.selectPicks(ctx, query, args, "select picks by week")
}

func (r *PickRepository) ListByUserAndWeek(ctx context.Context, userID string, season, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by user and week query: %w", err)
	}

	return r.selectPicks(ctx, query, args, "select picks by user and week")
}

func (r *PickRepository) selectPicks(ctx context.Context, query string, args []any, action string) ([]pick.Pick, error) {
	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PickRepository) Upsert(ctx context.Context, item pick.Pick) error {
	const upsertQuery = `
INSERT INTO picks (id, user_id, game_id, season, week, selected_side, predicted_home_score, predicted_away_score, correctness)
VALUES (:id, :user_id, :game_id, :season, :week, :selected_side, :predicted_home_score, :predicted_away_score, :correctness)
ON CONFLICT (user_id, game_id)
DO UPDATE SET
    selected_side = EXCLUDED.selected_side,
    predicted_home_score = EXCLUDED.predicted_home_score,
    predicted_away_score = EXCLUDED.predicted_away_score,
    correctness = EXCLUDED.correctness,
    updated_at = NOW()`

	args := map[string]any{
		"id":                   item.ID,
		"user_id":              item.UserID,
		"game_id":              item.GameID,
		"season":               item.Season,
		"week":                 item.Week,
		"selected_side":        string(item.SelectedSide),
		"predicted_home_score": intPtrToNullInt64(item.PredictedHomeScore),
		"predicted_away_score": intPtrToNullInt64(item.PredictedAwayScore),
		"correctness":          string(item.Correctness),
	}

	query, queryArgs, err := sqlx.Named(upsertQuery, args)
	if err != nil {
		return fmt.Errorf("bind upsert pick query: %w", err)
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, queryArgs...); err != nil {
		return fmt.Errorf("upsert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) ReplaceCorrectnessByGame(ctx context.Context, gameID string, marks map[string]pick.Correctness) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for pick correctness replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	resetQuery, resetArgs, err := qb.Update("picks").
		Set("correctness", string(pick.CorrectnessUnknown)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset pick correctness query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, resetQuery, resetArgs...); err != nil {
		return fmt.Errorf("reset pick correctness: %w", err)
	}

	for pickID, mark := range marks {
		markQuery, markArgs, err := qb.Update("picks").
			Set("correctness", string(mark)).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("id", pickID),
				qb.Eq("game_id", gameID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build mark pick correctness query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, markQuery, markArgs...); err != nil {
			return fmt.Errorf("mark pick correctness: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pick correctness replace: %w", err)
	}
	return nil
}
