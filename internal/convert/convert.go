package convert

import (
	"log"

	"github.com/scorecardlab/deadball/internal/normalize"
)

// ConvertHitter transforms a raw batting row into a Deadball hitter row.
// Missing rate stats propagate as nil targets rather than erroring.
func ConvertHitter(stat RawPlayerStat) PlayerRow {
	primary, all := ParsePositions(stat.Position, "")
	primary, all = MergePositions(primary, all, stat.Positions)

	return PlayerRow{
		Type:      Hitter,
		Name:      stat.Name,
		Team:      stat.Team,
		Pos:       primary,
		Positions: all,
		BatOrder:  ParseBattingOrder(stat.BattingOrder),
		Hand:      NormalizeHand(stat.BatSide),
		Throws:    NormalizeHand(stat.PitchHand),
		BT:        Target(stat.AVG),
		OBT:       Target(stat.OBP),
		Traits:    HitterTraits(stat),
	}
}

// ConvertPitcher transforms a raw pitching row into a Deadball pitcher
// row. Rates missing from the source are derived from counting stats
// when the innings total allows; a malformed innings value is recovered
// as zero, never fatal.
func ConvertPitcher(stat RawPlayerStat) PlayerRow {
	ip, err := ParseInnings(stat.InningsPitched)
	if err != nil {
		log.Printf("[converter] %s: %v (substituting 0)", stat.Name, err)
	}

	era := stat.ERA
	if era == nil && ip > 0 && stat.EarnedRuns != nil {
		era = ratePerNine(*stat.EarnedRuns, ip)
	}
	k9 := stat.K9
	if k9 == nil && ip > 0 && stat.StrikeOuts != nil {
		k9 = ratePerNine(*stat.StrikeOuts, ip)
	}
	bb9 := stat.BB9
	if bb9 == nil && ip > 0 && stat.Walks != nil {
		bb9 = ratePerNine(*stat.Walks, ip)
	}
	gbPct := stat.GBPct
	if gbPct == nil && stat.GroundOuts != nil && stat.AirOuts != nil {
		if total := *stat.GroundOuts + *stat.AirOuts; total > 0 {
			pct := *stat.GroundOuts / total * 100
			gbPct = &pct
		}
	}

	primary, all := ParsePositions(stat.Position, "P")
	primary, all = MergePositions(primary, all, stat.Positions)

	return PlayerRow{
		Type:         Pitcher,
		Name:         stat.Name,
		Team:         stat.Team,
		Pos:          primary,
		Positions:    all,
		BatOrder:     ParseBattingOrder(stat.BattingOrder),
		Hand:         NormalizeHand(stat.PitchHand),
		Throws:       NormalizeHand(stat.PitchHand),
		Traits:       PitcherTraits(stat, k9, bb9, gbPct, ip),
		PD:           PitchDie(era),
		ERA:          era,
		IP:           ip,
		K9:           k9,
		BB9:          bb9,
		GBPct:        gbPct,
		GamesStarted: stat.GamesStarted,
	}
}

func ratePerNine(count, innings float64) *float64 {
	v := count * 9 / innings
	return &v
}

// NormalizeHand maps the many spellings sources use for handedness onto
// the L|R|S vocabulary. "B" and "Switch" both mean switch. Anything else
// is unknown and yields "".
func NormalizeHand(raw string) string {
	if raw == "" {
		return ""
	}
	switch raw[0] {
	case 'L', 'l':
		return "L"
	case 'R', 'r':
		return "R"
	case 'S', 's', 'B', 'b':
		return "S"
	}
	return ""
}

// Table is a season Deadball table indexed by normalized player name,
// used to overlay season targets and traits onto single-game rows.
type Table struct {
	hitters  map[string]PlayerRow
	pitchers map[string]PlayerRow
}

// NewTable indexes converted season rows for lookup.
func NewTable(rows []PlayerRow) *Table {
	t := &Table{
		hitters:  make(map[string]PlayerRow),
		pitchers: make(map[string]PlayerRow),
	}
	for _, row := range rows {
		key := normalize.Name(row.Name)
		if key == "" {
			continue
		}
		switch row.Type {
		case Hitter:
			t.hitters[key] = row
		case Pitcher:
			t.pitchers[key] = row
		}
	}
	return t
}

// Hitter returns the season hitter row for a display name, if present.
func (t *Table) Hitter(name string) (PlayerRow, bool) {
	row, ok := t.hitters[normalize.Name(name)]
	return row, ok
}

// Pitcher returns the season pitcher row for a display name, if present.
func (t *Table) Pitcher(name string) (PlayerRow, bool) {
	row, ok := t.pitchers[normalize.Name(name)]
	return row, ok
}

// BuildSeason converts season-aggregate batting and pitching rows into a
// full Deadball table, hitters first, preserving source order within
// each group.
func BuildSeason(batting, pitching []RawPlayerStat) []PlayerRow {
	rows := make([]PlayerRow, 0, len(batting)+len(pitching))
	for _, stat := range batting {
		stat.Aggregate = true
		rows = append(rows, ConvertHitter(stat))
	}
	for _, stat := range pitching {
		stat.Aggregate = true
		rows = append(rows, ConvertPitcher(stat))
	}
	return rows
}
