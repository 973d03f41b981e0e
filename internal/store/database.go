package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database represents the PostgreSQL connection for build history
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase creates a new database connection
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migrations are applied in order and tracked by name.
var migrations = []struct {
	name string
	sql  string
}{
	{
		"001_create_games",
		`CREATE TABLE IF NOT EXISTS deadball_games (
			game_id SERIAL PRIMARY KEY,
			game_pk BIGINT UNIQUE NOT NULL,
			game_date DATE NOT NULL,
			away_team VARCHAR(100) NOT NULL,
			home_team VARCHAR(100) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_deadball_games_date ON deadball_games(game_date);`,
	},
	{
		"002_create_builds",
		`CREATE TABLE IF NOT EXISTS deadball_builds (
			build_id SERIAL PRIMARY KEY,
			game_id INTEGER NOT NULL REFERENCES deadball_games(game_id) ON DELETE CASCADE,
			season INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			scoreboard VARCHAR(200) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_deadball_builds_game ON deadball_builds(game_id);`,
	},
	{
		"003_create_player_rows",
		`CREATE TABLE IF NOT EXISTS deadball_player_rows (
			row_id SERIAL PRIMARY KEY,
			build_id INTEGER NOT NULL REFERENCES deadball_builds(build_id) ON DELETE CASCADE,
			side VARCHAR(4) NOT NULL,
			section VARCHAR(10) NOT NULL,
			row_idx INTEGER NOT NULL,
			player_type VARCHAR(10) NOT NULL,
			name VARCHAR(100) NOT NULL,
			pos VARCHAR(10) NOT NULL DEFAULT '',
			bat_order VARCHAR(10) NOT NULL DEFAULT '',
			hand VARCHAR(1) NOT NULL DEFAULT '',
			bt INTEGER,
			obt INTEGER,
			traits VARCHAR(100) NOT NULL DEFAULT '',
			pd VARCHAR(10) NOT NULL DEFAULT '',
			era DOUBLE PRECISION,
			ip DOUBLE PRECISION NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_deadball_rows_build ON deadball_player_rows(build_id);`,
	},
}

// RunMigrations executes all migrations in order
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	// Create migrations tracking table
	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range migrations {
		if err := db.runMigration(migration.name, migration.sql); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.name, err)
		}
	}

	log.Println("✓ All migrations completed successfully")

	return nil
}

// createMigrationsTable creates a table to track which migrations have been run
func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration applies a single migration if it hasn't been applied yet
func (db *Database) runMigration(name, statements string) error {
	// Check if already applied
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", name).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", name)
		return nil
	}

	// Execute migration in a transaction
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(statements); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	// Record migration as applied
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", name)
	return nil
}
