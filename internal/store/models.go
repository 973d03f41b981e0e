package store

import (
	"database/sql"
	"time"
)

// Game represents one converted matchup
type Game struct {
	GameID    int       `json:"game_id" db:"game_id"`
	GamePk    int64     `json:"game_pk" db:"game_pk"`
	GameDate  time.Time `json:"game_date" db:"game_date"`
	AwayTeam  string    `json:"away_team" db:"away_team"`
	HomeTeam  string    `json:"home_team" db:"home_team"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Build represents one scorecard build run for a game
type Build struct {
	BuildID    int       `json:"build_id" db:"build_id"`
	GameID     int       `json:"game_id" db:"game_id"`
	Season     int       `json:"season" db:"season"`
	Status     string    `json:"status" db:"status"`
	Detail     string    `json:"detail,omitempty" db:"detail"`
	Scoreboard string    `json:"scoreboard" db:"scoreboard"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Build statuses
const (
	BuildStarted   = "started"
	BuildCompleted = "completed"
	BuildFailed    = "failed"
)

// PlayerRow is one generated scorecard row as persisted
type PlayerRow struct {
	RowID      int             `json:"row_id" db:"row_id"`
	BuildID    int             `json:"build_id" db:"build_id"`
	Side       string          `json:"side" db:"side"`       // away | home
	Section    string          `json:"section" db:"section"` // lineup | bench | pitcher
	RowIdx     int             `json:"row_idx" db:"row_idx"`
	PlayerType string          `json:"player_type" db:"player_type"`
	Name       string          `json:"name" db:"name"`
	Pos        string          `json:"pos" db:"pos"`
	BatOrder   string          `json:"bat_order,omitempty" db:"bat_order"`
	Hand       string          `json:"hand" db:"hand"`
	BT         sql.NullInt32   `json:"bt,omitempty" db:"bt"`
	OBT        sql.NullInt32   `json:"obt,omitempty" db:"obt"`
	Traits     string          `json:"traits" db:"traits"`
	PD         string          `json:"pd,omitempty" db:"pd"`
	ERA        sql.NullFloat64 `json:"era,omitempty" db:"era"`
	IP         float64         `json:"ip" db:"ip"`
}
