package mlb

// ScheduledGame is one game from the schedule endpoint.
type ScheduledGame struct {
	GamePk   int
	Date     string
	GameType string // R, F, D, L, W, ...
	Status   string
	AwayName string
	HomeName string
	AwayID   int
	HomeID   int
}

// Postseason reports whether the game type is a playoff round. The
// conversion path is identical either way; this only annotates output.
func (g ScheduledGame) Postseason() bool {
	switch g.GameType {
	case "F", "D", "L", "W":
		return true
	}
	return false
}

// BoxscoreTeams carries the two team labels recorded in a boxscore,
// used downstream for side resolution.
type BoxscoreTeams struct {
	AwayName string
	HomeName string
}

// Person is the subset of a player-database record the pipeline needs.
type Person struct {
	ID        int
	FullName  string
	BatSide   string
	PitchHand string
}
