package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scorecardlab/deadball/internal/store"
)

// BuildRepository handles build runs and their generated rows
type BuildRepository struct {
	db *store.Database
}

// NewBuildRepository creates a new build repository
func NewBuildRepository(db *store.Database) *BuildRepository {
	return &BuildRepository{db: db}
}

// Create records the start of a build
func (r *BuildRepository) Create(ctx context.Context, build *store.Build) (*store.Build, error) {
	query := `
		INSERT INTO deadball_builds (game_id, season, status, detail, scoreboard)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING build_id, game_id, season, status, detail, scoreboard, created_at
	`

	stored := &store.Build{}
	err := r.db.DB().QueryRowContext(ctx, query,
		build.GameID, build.Season, build.Status, build.Detail, build.Scoreboard,
	).Scan(
		&stored.BuildID, &stored.GameID, &stored.Season,
		&stored.Status, &stored.Detail, &stored.Scoreboard, &stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating build: %w", err)
	}
	return stored, nil
}

// SetStatus finishes a build with its outcome
func (r *BuildRepository) SetStatus(ctx context.Context, buildID int, status, detail, scoreboard string) error {
	query := `
		UPDATE deadball_builds
		SET status = $2, detail = $3, scoreboard = $4
		WHERE build_id = $1
	`
	if _, err := r.db.DB().ExecContext(ctx, query, buildID, status, detail, scoreboard); err != nil {
		return fmt.Errorf("updating build %d: %w", buildID, err)
	}
	return nil
}

// LatestForGame returns the most recent build for a game
func (r *BuildRepository) LatestForGame(ctx context.Context, gameID int) (*store.Build, error) {
	query := `
		SELECT build_id, game_id, season, status, detail, scoreboard, created_at
		FROM deadball_builds
		WHERE game_id = $1
		ORDER BY build_id DESC
		LIMIT 1
	`

	build := &store.Build{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&build.BuildID, &build.GameID, &build.Season,
		&build.Status, &build.Detail, &build.Scoreboard, &build.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no builds for game %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying build: %w", err)
	}
	return build, nil
}

// ReplaceRows deletes any rows from a previous run of this build and
// inserts the new set in one transaction.
func (r *BuildRepository) ReplaceRows(ctx context.Context, buildID int, rows []store.PlayerRow) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM deadball_player_rows WHERE build_id = $1", buildID); err != nil {
		return fmt.Errorf("clearing rows for build %d: %w", buildID, err)
	}

	query := `
		INSERT INTO deadball_player_rows
			(build_id, side, section, row_idx, player_type, name, pos, bat_order,
			 hand, bt, obt, traits, pd, era, ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			buildID, row.Side, row.Section, row.RowIdx, row.PlayerType,
			row.Name, row.Pos, row.BatOrder, row.Hand,
			row.BT, row.OBT, row.Traits, row.PD, row.ERA, row.IP,
		); err != nil {
			return fmt.Errorf("inserting row for %s: %w", row.Name, err)
		}
	}

	return tx.Commit()
}

// RowsForBuild returns a build's generated rows in scorecard order
func (r *BuildRepository) RowsForBuild(ctx context.Context, buildID int) ([]store.PlayerRow, error) {
	query := `
		SELECT row_id, build_id, side, section, row_idx, player_type, name, pos,
			bat_order, hand, bt, obt, traits, pd, era, ip
		FROM deadball_player_rows
		WHERE build_id = $1
		ORDER BY side, section, row_idx
	`

	rows, err := r.db.DB().QueryContext(ctx, query, buildID)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var out []store.PlayerRow
	for rows.Next() {
		var row store.PlayerRow
		if err := rows.Scan(
			&row.RowID, &row.BuildID, &row.Side, &row.Section, &row.RowIdx,
			&row.PlayerType, &row.Name, &row.Pos, &row.BatOrder, &row.Hand,
			&row.BT, &row.OBT, &row.Traits, &row.PD, &row.ERA, &row.IP,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
