package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scorecardlab/deadball/internal/roster"
)

// Side selects which half of the scorecard a lineup fills.
type Side string

const (
	Away Side = "away"
	Home Side = "home"
)

// Fixed row capacities of the scorecard document.
const (
	lineupCapacity  = 9
	benchCapacity   = 5
	pitcherCapacity = 12
)

func (s Side) prefix() string { return strings.ToUpper(string(s)) }

// Fields flattens a lineup into the scorecard's form-field map. Keys
// follow <SIDE><CATEGORY><ATTR>.<idx>; index 0 is also written to the
// bare key because some templates only recognize the first occurrence
// of a field unindexed. Rows beyond a section's capacity are dropped
// silently.
func Fields(lineup roster.Lineup, side Side) map[string]string {
	fields := make(map[string]string)
	p := side.prefix()

	set := func(key string, idx int, value string) {
		fields[fmt.Sprintf("%s.%d", key, idx)] = value
		if idx == 0 {
			fields[key] = value
		}
	}

	for i, h := range lineup.Starters {
		if i >= lineupCapacity {
			break
		}
		set(p+"NAME", i, h.Name)
		set(p+"POS", i, h.Pos)
		set(p+"LR", i, h.Hand)
		set(p+"BT", i, formatTarget(h.BT))
		set(p+"OBT", i, formatTarget(h.OBT))
		set(p+"TRAITS", i, strings.Join(h.Traits, " "))
	}

	for i, h := range lineup.Bench {
		if i >= benchCapacity {
			break
		}
		set(p+"BENCHNAME", i, h.Name)
		set(p+"BENCHPOS", i, h.Pos)
		set(p+"BENCHLR", i, h.Hand)
		set(p+"BENCHBT", i, formatTarget(h.BT))
		set(p+"BENCHOBT", i, formatTarget(h.OBT))
		set(p+"BENCHTRAITS", i, strings.Join(h.Traits, " "))
	}

	for i, pr := range lineup.Pitchers() {
		if i >= pitcherCapacity {
			break
		}
		role := "RP"
		if i == 0 && lineup.StartingPitcher != nil {
			role = "SP"
		}
		set(p+"PITCHPOS", i, role)
		set(p+"PITCHNAME", i, pr.Name)
		set(p+"PITCHPD", i, pr.PD)
		set(p+"PITCHLR", i, pr.Hand)
		set(p+"PITCHBT", i, formatTarget(pr.BT))
		set(p+"PITCHOBT", i, formatTarget(pr.OBT))
		set(p+"PITCHIP", i, "")
		set(p+"PITCHTRAITS", i, strings.Join(pr.Traits, " "))
	}

	set(p+"TEAM", 0, lineup.Team)
	return fields
}

// GameFields merges both sides' field maps and adds the scoreboard
// header line.
func GameFields(game roster.Game) map[string]string {
	fields := Fields(game.Away, Away)
	for k, v := range Fields(game.Home, Home) {
		fields[k] = v
	}

	scoreboard := fmt.Sprintf("%s @ %s", game.AwayLabel, game.HomeLabel)
	fields["AWAYTEAMSCOREBOARD"] = scoreboard
	fields["AWAYTEAMSCOREBOARD.0"] = scoreboard
	fields["HOMETEAMSCOREBOARD"] = scoreboard
	fields["HOMETEAMSCOREBOARD.0"] = scoreboard
	return fields
}

// formatTarget renders a nullable numeric target without a trailing
// ".0". Nil renders empty.
func formatTarget(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
