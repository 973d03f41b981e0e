package convert

import (
	"fmt"
	"strconv"
)

// PlayerType distinguishes the two row kinds in a Deadball table.
type PlayerType string

const (
	Hitter  PlayerType = "hitter"
	Pitcher PlayerType = "pitcher"
)

// BatOrder is a lineup slot 1-9 with an optional sub-slot marking a
// substitution event ("7.1" is a pinch-hitter replacing slot 7).
type BatOrder struct {
	Slot int
	Sub  int
}

// String renders "5" for a starter slot and "5.2" for a substitution.
func (b BatOrder) String() string {
	if b.Sub == 0 {
		return strconv.Itoa(b.Slot)
	}
	return fmt.Sprintf("%d.%d", b.Slot, b.Sub)
}

// SortKey orders slots before their substitutions: 5 < 5.01 < 5.02 < 6.
func (b BatOrder) SortKey() float64 {
	return float64(b.Slot) + float64(b.Sub)/100.0
}

// missingOrderKey sorts rows without a batting order last.
const missingOrderKey = 999.0

// OrderKey is SortKey tolerant of a missing batting order.
func OrderKey(b *BatOrder) float64 {
	if b == nil {
		return missingOrderKey
	}
	return b.SortKey()
}

// ParseBattingOrder decodes the stats feed's battingOrder encoding
// (slot*100 + sub, e.g. "100" is slot 1, "502" is the second substitute
// in slot 5). Empty, non-numeric, or non-positive values yield nil.
func ParseBattingOrder(raw string) *BatOrder {
	if raw == "" {
		return nil
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	slot := num / 100
	if slot <= 0 {
		return nil
	}
	return &BatOrder{Slot: slot, Sub: num % 100}
}

// RawPlayerStat is one row of source statistics for a player, as parsed
// from a boxscore or a season aggregate table. Counting stats default to
// zero; rate stats are nil when the source did not provide them.
type RawPlayerStat struct {
	Name       string
	Team       string
	ExternalID int // stats-feed person id, 0 when unknown
	Season     int

	// Aggregate marks season-total rows, which use the season thresholds
	// for durability and stamina traits instead of the single-game ones.
	Aggregate bool

	Position     string   // primary position code as received ("RF", "PH-RF", "7/8")
	Positions    []string // additional position codes in source order
	BattingOrder string   // feed encoding, e.g. "502"; empty when absent
	BatSide      string
	PitchHand    string

	// Hitting
	Games       float64
	AtBats      float64
	Hits        float64
	HomeRuns    float64
	Doubles     float64
	StolenBases float64
	AVG         *float64
	OBP         *float64
	FieldingPct *float64

	// Pitching
	InningsPitched string
	EarnedRuns     *float64
	StrikeOuts     *float64
	Walks          *float64
	GroundOuts     *float64
	AirOuts        *float64
	GamesStarted   float64
	CompleteGames  float64

	// Season sources carry rates directly; game rows derive them.
	ERA   *float64
	K9    *float64
	BB9   *float64
	GBPct *float64
}

// PlayerRow is the converted Deadball record. Rows are built once during
// conversion and never mutated afterwards; regeneration rebuilds them
// wholesale.
type PlayerRow struct {
	Type      PlayerType
	Name      string
	Team      string
	Pos       string
	Positions []string
	BatOrder  *BatOrder

	// Hand is the scorecard LR column: bats for hitters, throws for
	// pitchers. One of "L", "R", "S", or "" when unresolved.
	Hand   string
	Throws string

	BT     *int
	OBT    *int
	Traits []string

	// Pitcher-only fields.
	PD           string
	ERA          *float64
	IP           float64
	K9           *float64
	BB9          *float64
	GBPct        *float64
	GamesStarted float64
}

// Target converts a rate stat on the 0-1 scale to the Deadball 0-99
// target scale: round(rate*100), capped at 99 so a .995+ rate still
// fits the two-digit column. Nil propagates.
func Target(rate *float64) *int {
	if rate == nil {
		return nil
	}
	v := int(*rate*100 + 0.5)
	if v > 99 {
		v = 99
	}
	return &v
}
