package mlb

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/scorecardlab/deadball/internal/convert"
)

// ParseBoxscore turns a boxscore document into raw stat rows for both
// teams plus the recorded team labels. Players with neither an at-bat
// nor an inning pitched still get rows; downstream assembly decides who
// makes the card.
func ParseBoxscore(data map[string]interface{}) ([]convert.RawPlayerStat, BoxscoreTeams, error) {
	teams := extractMap(data, "teams")
	if len(teams) == 0 {
		return nil, BoxscoreTeams{}, fmt.Errorf("boxscore has no teams block")
	}

	labels := BoxscoreTeams{
		AwayName: extractString(extractMap(extractMap(teams, "away"), "team"), "name"),
		HomeName: extractString(extractMap(extractMap(teams, "home"), "team"), "name"),
	}

	var rows []convert.RawPlayerStat
	for _, side := range []string{"away", "home"} {
		sideMap := extractMap(teams, side)
		teamName := extractString(extractMap(sideMap, "team"), "name")

		for _, player := range sortedPlayers(extractMap(sideMap, "players")) {
			rows = append(rows, parsePlayer(player, teamName)...)
		}
	}

	if len(rows) == 0 {
		return nil, labels, fmt.Errorf("boxscore has no player rows")
	}
	return rows, labels, nil
}

// sortedPlayers orders a side's player entries by batting-order key
// then person id. The feed serves players as a JSON object, so a map
// walk would emit rows in a different order every run; downstream
// assembly (bench order, reliever order, starter fallback) depends on
// row order being stable.
func sortedPlayers(players map[string]interface{}) []map[string]interface{} {
	entries := make([]map[string]interface{}, 0, len(players))
	for _, playerEntry := range players {
		if player, ok := playerEntry.(map[string]interface{}); ok {
			entries = append(entries, player)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		oi := convert.OrderKey(convert.ParseBattingOrder(extractString(entries[i], "battingOrder")))
		oj := convert.OrderKey(convert.ParseBattingOrder(extractString(entries[j], "battingOrder")))
		if oi != oj {
			return oi < oj
		}
		return extractInt(extractMap(entries[i], "person"), "id") < extractInt(extractMap(entries[j], "person"), "id")
	})
	return entries
}

// parsePlayer emits up to two rows for one boxscore player entry: a
// batting row when the player appeared at the plate or in the field,
// and a pitching row when they threw.
func parsePlayer(player map[string]interface{}, teamName string) []convert.RawPlayerStat {
	person := extractMap(player, "person")
	name := extractString(person, "fullName")
	if name == "" {
		return nil
	}
	personID := extractInt(person, "id")

	position := extractString(extractMap(player, "position"), "abbreviation")
	var allPositions []string
	for _, entry := range extractArray(player, "allPositions") {
		if posMap, ok := entry.(map[string]interface{}); ok {
			if abbr := extractString(posMap, "abbreviation"); abbr != "" {
				allPositions = append(allPositions, abbr)
			}
		}
	}

	stats := extractMap(player, "stats")
	batting := extractMap(stats, "batting")
	pitching := extractMap(stats, "pitching")

	base := convert.RawPlayerStat{
		Name:         name,
		Team:         teamName,
		ExternalID:   personID,
		Position:     position,
		Positions:    allPositions,
		BattingOrder: extractString(player, "battingOrder"),
		BatSide:      extractString(extractMap(person, "batSide"), "code"),
		PitchHand:    extractString(extractMap(person, "pitchHand"), "code"),
	}

	var rows []convert.RawPlayerStat

	if len(batting) > 0 {
		row := base
		row.Games = extractFloat(batting, "gamesPlayed")
		row.AtBats = extractFloat(batting, "atBats")
		row.Hits = extractFloat(batting, "hits")
		row.HomeRuns = extractFloat(batting, "homeRuns")
		row.Doubles = extractFloat(batting, "doubles")
		row.StolenBases = extractFloat(batting, "stolenBases")
		row.AVG = battingAverage(row.Hits, row.AtBats)
		row.OBP = onBasePct(batting)
		rows = append(rows, row)
	}

	if len(pitching) > 0 {
		row := base
		row.InningsPitched = extractString(pitching, "inningsPitched")
		row.EarnedRuns = extractFloatPtr(pitching, "earnedRuns")
		row.StrikeOuts = extractFloatPtr(pitching, "strikeOuts")
		row.Walks = extractFloatPtr(pitching, "baseOnBalls")
		row.GroundOuts = extractFloatPtr(pitching, "groundOuts")
		row.AirOuts = extractFloatPtr(pitching, "airOuts")
		row.GamesStarted = extractFloat(pitching, "gamesStarted")
		row.CompleteGames = extractFloat(pitching, "completeGames")
		if row.Position == "" {
			row.Position = "P"
		}
		rows = append(rows, row)
	}

	return rows
}

// SplitRows partitions raw rows into batting and pitching slices based
// on which stat block each carries.
func SplitRows(rows []convert.RawPlayerStat) (batting, pitching []convert.RawPlayerStat) {
	for _, row := range rows {
		if row.InningsPitched != "" || row.EarnedRuns != nil || row.GamesStarted > 0 {
			pitching = append(pitching, row)
			continue
		}
		batting = append(batting, row)
	}
	return batting, pitching
}

func battingAverage(hits, atBats float64) *float64 {
	if atBats <= 0 {
		return nil
	}
	avg := hits / atBats
	return &avg
}

// onBasePct derives OBP from a game batting block. Season aggregates
// carry "obp" directly; game rows carry only counting stats.
func onBasePct(batting map[string]interface{}) *float64 {
	if raw := extractString(batting, "obp"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return &v
		}
	}

	ab := extractFloat(batting, "atBats")
	hits := extractFloat(batting, "hits")
	walks := extractFloat(batting, "baseOnBalls")
	hbp := extractFloat(batting, "hitByPitch")
	sf := extractFloat(batting, "sacFlies")

	denom := ab + walks + hbp + sf
	if denom <= 0 {
		return nil
	}
	obp := (hits + walks + hbp) / denom
	return &obp
}

// Helper functions

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		return parseFloat(v)
	}
	return 0
}

func extractFloatPtr(m map[string]interface{}, key string) *float64 {
	if _, ok := m[key]; !ok {
		return nil
	}
	v := parseFloat(m[key])
	return &v
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}

func parseFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	case int:
		return float64(val)
	default:
		return 0
	}
}
