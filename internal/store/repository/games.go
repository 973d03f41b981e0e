package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/scorecardlab/deadball/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts a game or refreshes its teams and status, returning
// the stored record.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) (*store.Game, error) {
	query := `
		INSERT INTO deadball_games (game_pk, game_date, away_team, home_team, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_pk) DO UPDATE SET
			away_team = EXCLUDED.away_team,
			home_team = EXCLUDED.home_team,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING game_id, game_pk, game_date, away_team, home_team, status, created_at, updated_at
	`

	stored := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query,
		game.GamePk, game.GameDate, game.AwayTeam, game.HomeTeam, game.Status,
	).Scan(
		&stored.GameID, &stored.GamePk, &stored.GameDate,
		&stored.AwayTeam, &stored.HomeTeam, &stored.Status,
		&stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting game %d: %w", game.GamePk, err)
	}
	return stored, nil
}

// GetByGamePk finds a game by the stats feed's game id
func (r *GameRepository) GetByGamePk(ctx context.Context, gamePk int64) (*store.Game, error) {
	query := `
		SELECT game_id, game_pk, game_date, away_team, home_team, status, created_at, updated_at
		FROM deadball_games
		WHERE game_pk = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gamePk).Scan(
		&game.GameID, &game.GamePk, &game.GameDate,
		&game.AwayTeam, &game.HomeTeam, &game.Status,
		&game.CreatedAt, &game.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gamePk)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// GetByDate returns all games converted on a specific date
func (r *GameRepository) GetByDate(ctx context.Context, date time.Time) ([]*store.Game, error) {
	query := `
		SELECT game_id, game_pk, game_date, away_team, home_team, status, created_at, updated_at
		FROM deadball_games
		WHERE game_date = $1
		ORDER BY game_pk
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		if err := rows.Scan(
			&game.GameID, &game.GamePk, &game.GameDate,
			&game.AwayTeam, &game.HomeTeam, &game.Status,
			&game.CreatedAt, &game.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
