package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/scorecardlab/deadball/internal/convert"
	"github.com/scorecardlab/deadball/internal/normalize"
)

// ErrInsufficientData is returned when a game needs two teams but the
// source rows name fewer than two.
var ErrInsufficientData = errors.New("insufficient data")

// Game is both sides of one matchup, assembled and side-resolved.
type Game struct {
	Away Lineup
	Home Lineup

	// Labels are the display names for the scoreboard line.
	AwayLabel string
	HomeLabel string
}

// ResolveSides splits converted rows into away and home lineups.
// Each side carries an ordered candidate list — typically the schedule
// metadata name first, then the boxscore's recorded label — any of
// which may be empty or spelled differently than the rows' team labels.
// Matching tries every candidate exact by normalized key, then every
// candidate by substring containment, then falls back to positional
// order.
func ResolveSides(rows []convert.PlayerRow, awayNames, homeNames []string) (Game, error) {
	buckets, order := bucketByTeam(rows)
	if len(order) < 2 {
		return Game{}, fmt.Errorf("%w: found %d team(s), need 2", ErrInsufficientData, len(order))
	}

	awayTeam := matchTeam(order, awayNames)
	homeTeam := matchTeam(order, homeNames)

	if awayTeam == "" {
		awayTeam = order[0]
	}
	if homeTeam == "" || homeTeam == awayTeam {
		// Force home onto the other bucket rather than double-booking.
		for _, team := range order {
			if team != awayTeam {
				homeTeam = team
				break
			}
		}
	}

	game := Game{
		Away:      Assemble(buckets[awayTeam], awayTeam),
		Home:      Assemble(buckets[homeTeam], homeTeam),
		AwayLabel: pickLabel(awayNames, awayTeam),
		HomeLabel: pickLabel(homeNames, homeTeam),
	}
	return game, nil
}

// bucketByTeam groups rows by their team label, preserving first-seen
// team order.
func bucketByTeam(rows []convert.PlayerRow) (map[string][]convert.PlayerRow, []string) {
	buckets := make(map[string][]convert.PlayerRow)
	var order []string
	for _, row := range rows {
		team := row.Team
		if _, seen := buckets[team]; !seen {
			order = append(order, team)
		}
		buckets[team] = append(buckets[team], row)
	}

	// More than two labels means stray rows; keep the two largest.
	if len(order) > 2 {
		sort.SliceStable(order, func(i, j int) bool {
			return len(buckets[order[i]]) > len(buckets[order[j]])
		})
		order = order[:2]
	}
	return buckets, order
}

// matchTeam finds the bucket label matching one of a side's candidate
// names, or "" when nothing matches. All candidates are tried exact
// before any is tried by substring, so a weaker match on the first
// candidate never beats an exact match on the second.
func matchTeam(teams []string, names []string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		key := normalize.TeamKey(name)
		for _, team := range teams {
			if normalize.TeamKey(team) == key {
				return team
			}
		}
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		key := normalize.TeamKey(name)
		for _, team := range teams {
			tk := normalize.TeamKey(team)
			if tk == "" {
				continue
			}
			if strings.Contains(key, tk) || strings.Contains(tk, key) {
				return team
			}
		}
	}
	return ""
}

func pickLabel(names []string, bucketName string) string {
	for _, name := range names {
		if name != "" {
			return name
		}
	}
	return bucketName
}
