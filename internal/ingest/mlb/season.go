package mlb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scorecardlab/deadball/internal/convert"
)

// TeamSeasonStats fetches a team's full-season roster with each
// player's season hitting and pitching lines hydrated in.
func (c *Client) TeamSeasonStats(ctx context.Context, teamQuery string, season int) ([]convert.RawPlayerStat, error) {
	teamID := TeamID(teamQuery)
	if teamID == 0 {
		return nil, fmt.Errorf("unknown team %q", teamQuery)
	}

	u := fmt.Sprintf(
		"%s/teams/%d/roster?rosterType=fullSeason&season=%d&hydrate=person(stats(group=[hitting,pitching],type=season,season=%d))",
		c.baseURL, teamID, season, season,
	)
	data, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching season roster %s/%d: %w", teamQuery, season, err)
	}

	rows := ParseSeasonRoster(data, teamQuery, season)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no season stats for %s in %d", teamQuery, season)
	}
	return rows, nil
}

// ParseSeasonRoster turns a hydrated roster document into raw season
// rows, one per stat group a player has.
func ParseSeasonRoster(data map[string]interface{}, team string, season int) []convert.RawPlayerStat {
	var rows []convert.RawPlayerStat

	for _, entry := range extractArray(data, "roster") {
		rosterEntry, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		person := extractMap(rosterEntry, "person")
		name := extractString(person, "fullName")
		if name == "" {
			continue
		}

		base := convert.RawPlayerStat{
			Name:       name,
			Team:       team,
			ExternalID: extractInt(person, "id"),
			Season:     season,
			Aggregate:  true,
			Position:   extractString(extractMap(rosterEntry, "position"), "abbreviation"),
			BatSide:    extractString(extractMap(person, "batSide"), "code"),
			PitchHand:  extractString(extractMap(person, "pitchHand"), "code"),
		}

		for _, statEntry := range extractArray(person, "stats") {
			statGroup, ok := statEntry.(map[string]interface{})
			if !ok {
				continue
			}
			group := extractString(extractMap(statGroup, "group"), "displayName")
			splits := extractArray(statGroup, "splits")
			if len(splits) == 0 {
				continue
			}
			split, ok := splits[0].(map[string]interface{})
			if !ok {
				continue
			}
			stat := extractMap(split, "stat")
			if len(stat) == 0 {
				continue
			}

			switch group {
			case "hitting":
				row := base
				row.Games = extractFloat(stat, "gamesPlayed")
				row.AtBats = extractFloat(stat, "atBats")
				row.Hits = extractFloat(stat, "hits")
				row.HomeRuns = extractFloat(stat, "homeRuns")
				row.Doubles = extractFloat(stat, "doubles")
				row.StolenBases = extractFloat(stat, "stolenBases")
				row.AVG = rateStat(stat, "avg")
				row.OBP = rateStat(stat, "obp")
				row.FieldingPct = rateStat(stat, "fielding")
				rows = append(rows, row)
			case "pitching":
				row := base
				row.InningsPitched = extractString(stat, "inningsPitched")
				row.EarnedRuns = extractFloatPtr(stat, "earnedRuns")
				row.StrikeOuts = extractFloatPtr(stat, "strikeOuts")
				row.Walks = extractFloatPtr(stat, "baseOnBalls")
				row.GroundOuts = extractFloatPtr(stat, "groundOuts")
				row.AirOuts = extractFloatPtr(stat, "airOuts")
				row.GamesStarted = extractFloat(stat, "gamesStarted")
				row.CompleteGames = extractFloat(stat, "completeGames")
				row.ERA = rateStat(stat, "era")
				rows = append(rows, row)
			}
		}
	}

	return rows
}

// rateStat reads a rate the feed formats as a string (".307", "2.95").
func rateStat(stat map[string]interface{}, key string) *float64 {
	raw := extractString(stat, key)
	if raw == "" {
		if v, ok := stat[key]; ok {
			f := parseFloat(v)
			return &f
		}
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
