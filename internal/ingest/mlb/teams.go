package mlb

import "strings"

// teamIDs maps Baseball-Reference team codes to the stats feed's
// numeric team ids.
var teamIDs = map[string]int{
	"ARI": 109, "ATL": 144, "BAL": 110, "BOS": 111, "CHC": 112,
	"CHW": 145, "CIN": 113, "CLE": 114, "COL": 115, "DET": 116,
	"HOU": 117, "KCR": 118, "LAA": 108, "LAD": 119, "MIA": 146,
	"MIL": 158, "MIN": 142, "NYM": 121, "NYY": 147, "OAK": 133,
	"PHI": 143, "PIT": 134, "SDP": 135, "SEA": 136, "SFG": 137,
	"STL": 138, "TBR": 139, "TEX": 140, "TOR": 141, "WSN": 120,
}

// teamNameToCode normalizes the many full-name spellings to the
// Baseball-Reference code used everywhere else in the pipeline.
var teamNameToCode = map[string]string{
	"arizona diamondbacks":  "ARI",
	"atlanta braves":        "ATL",
	"baltimore orioles":     "BAL",
	"boston red sox":        "BOS",
	"chicago cubs":          "CHC",
	"chicago white sox":     "CHW",
	"cincinnati reds":       "CIN",
	"cleveland guardians":   "CLE",
	"cleveland indians":     "CLE",
	"colorado rockies":      "COL",
	"detroit tigers":        "DET",
	"houston astros":        "HOU",
	"kansas city royals":    "KCR",
	"los angeles angels":    "LAA",
	"los angeles dodgers":   "LAD",
	"miami marlins":         "MIA",
	"milwaukee brewers":     "MIL",
	"minnesota twins":       "MIN",
	"new york mets":         "NYM",
	"new york yankees":      "NYY",
	"oakland athletics":     "OAK",
	"athletics":             "OAK",
	"philadelphia phillies": "PHI",
	"pittsburgh pirates":    "PIT",
	"san diego padres":      "SDP",
	"seattle mariners":      "SEA",
	"san francisco giants":  "SFG",
	"st. louis cardinals":   "STL",
	"st louis cardinals":    "STL",
	"tampa bay rays":        "TBR",
	"texas rangers":         "TEX",
	"toronto blue jays":     "TOR",
	"washington nationals":  "WSN",
}

// TeamCode resolves a team query (code or full name, any case) to the
// canonical code. Unknown input returns "".
func TeamCode(query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return ""
	}
	upper := strings.ToUpper(q)
	if _, ok := teamIDs[upper]; ok {
		return upper
	}
	if code, ok := teamNameToCode[strings.ToLower(q)]; ok {
		return code
	}
	return ""
}

// TeamID resolves a team query to the stats feed's numeric id, 0 when
// unknown.
func TeamID(query string) int {
	return teamIDs[TeamCode(query)]
}

// MatchesTeam reports whether a schedule team name refers to the
// queried team.
func MatchesTeam(scheduleName, query string) bool {
	code := TeamCode(query)
	if code == "" {
		return strings.EqualFold(strings.TrimSpace(scheduleName), strings.TrimSpace(query))
	}
	return TeamCode(scheduleName) == code
}
