package roster

import (
	"log"
	"sort"
	"strings"

	"github.com/scorecardlab/deadball/internal/convert"
)

const (
	lineupSlots  = 9
	maxPitchers  = 12
	twoWayMissed = 99 // sentinel slot when every lineup slot is taken
)

// Lineup is one team's assembled Deadball card: nine starters in batting
// order, the bench in substitution order, and the pitching staff.
type Lineup struct {
	Team            string
	Starters        []convert.PlayerRow
	Bench           []convert.PlayerRow
	StartingPitcher *convert.PlayerRow
	Relievers       []convert.PlayerRow
}

// Pitchers returns the staff starter-first, capped at the scorecard's
// twelve pitcher rows.
func (l *Lineup) Pitchers() []convert.PlayerRow {
	var staff []convert.PlayerRow
	if l.StartingPitcher != nil {
		staff = append(staff, *l.StartingPitcher)
	}
	staff = append(staff, l.Relievers...)
	if len(staff) > maxPitchers {
		staff = staff[:maxPitchers]
	}
	return staff
}

// Assemble builds a lineup from converted rows belonging to one team.
// Hitters sort by batting-order key then name; the first occurrence of
// each integer slot one through nine starts, everyone else is bench in
// encounter order. The starting pitcher is the first row that looks like
// a starter, else the first pitcher seen.
func Assemble(rows []convert.PlayerRow, team string) Lineup {
	lineup := Lineup{Team: team}

	var hitters, pitchers []convert.PlayerRow
	for _, row := range rows {
		switch row.Type {
		case convert.Hitter:
			hitters = append(hitters, row)
		case convert.Pitcher:
			pitchers = append(pitchers, row)
		}
	}

	hitters = dropPitcherShadows(hitters, pitchers)
	hitters = promoteTwoWay(hitters, pitchers)

	sort.SliceStable(hitters, func(i, j int) bool {
		ki, kj := convert.OrderKey(hitters[i].BatOrder), convert.OrderKey(hitters[j].BatOrder)
		if ki != kj {
			return ki < kj
		}
		return hitters[i].Name < hitters[j].Name
	})

	// First row per integer slot starts, up to nine starters; repeats
	// (pinch hitters under an occupied slot) and overflow go to the
	// bench in encounter order.
	taken := make(map[int]bool)
	for _, h := range hitters {
		if h.BatOrder != nil && !taken[h.BatOrder.Slot] && len(lineup.Starters) < lineupSlots {
			taken[h.BatOrder.Slot] = true
			lineup.Starters = append(lineup.Starters, h)
			continue
		}
		lineup.Bench = append(lineup.Bench, h)
	}

	starterIdx := -1
	for i, p := range pitchers {
		if isStarter(p) {
			starterIdx = i
			break
		}
	}
	if starterIdx < 0 && len(pitchers) > 0 {
		starterIdx = 0
	}
	for i, p := range pitchers {
		if i == starterIdx {
			sp := p
			lineup.StartingPitcher = &sp
			continue
		}
		lineup.Relievers = append(lineup.Relievers, p)
	}

	return lineup
}

// isStarter applies the starter heuristic: an explicit SP position, a
// positive pitch die, or a recorded game started.
func isStarter(p convert.PlayerRow) bool {
	if strings.Contains(strings.ToUpper(p.Pos), "SP") {
		return true
	}
	if strings.HasPrefix(p.PD, "d") {
		return true
	}
	return p.GamesStarted >= 1
}

// promoteTwoWay adds a hitter row for any pitcher who also bats (a DH
// marker or a batting-order slot) but has no hitter row of their own.
// Missing batting targets are backfilled with the team's hitter means so
// the card stays playable.
func promoteTwoWay(hitters, pitchers []convert.PlayerRow) []convert.PlayerRow {
	known := make(map[string]bool, len(hitters))
	for _, h := range hitters {
		known[h.Name] = true
	}

	meanBT, meanOBT := hitterMeans(hitters)

	for _, p := range pitchers {
		if known[p.Name] {
			continue
		}
		if !batsToo(p) {
			continue
		}

		promoted := convert.PlayerRow{
			Type:      convert.Hitter,
			Name:      p.Name,
			Team:      p.Team,
			Pos:       "P",
			Positions: p.Positions,
			BatOrder:  p.BatOrder,
			Hand:      p.Hand,
			Throws:    p.Throws,
			BT:        p.BT,
			OBT:       p.OBT,
			Traits:    p.Traits,
		}
		if promoted.BT == nil {
			bt := meanBT
			promoted.BT = &bt
		}
		if promoted.OBT == nil {
			obt := meanOBT
			promoted.OBT = &obt
		}
		if promoted.BatOrder == nil {
			slot := 1
			if slotTaken(hitters, 1) {
				slot = twoWayMissed
			}
			promoted.BatOrder = &convert.BatOrder{Slot: slot}
		}
		log.Printf("[roster] promoted two-way player %s to lineup slot %s", p.Name, promoted.BatOrder)
		hitters = append(hitters, promoted)
		known[p.Name] = true
	}
	return hitters
}

func batsToo(p convert.PlayerRow) bool {
	if p.BatOrder != nil {
		return true
	}
	for _, pos := range p.Positions {
		if pos == "DH" {
			return true
		}
	}
	return false
}

func slotTaken(hitters []convert.PlayerRow, slot int) bool {
	for _, h := range hitters {
		if h.BatOrder != nil && h.BatOrder.Slot == slot {
			return true
		}
	}
	return false
}

func hitterMeans(hitters []convert.PlayerRow) (int, int) {
	var btSum, btN, obtSum, obtN int
	for _, h := range hitters {
		if h.BT != nil {
			btSum += *h.BT
			btN++
		}
		if h.OBT != nil {
			obtSum += *h.OBT
			obtN++
		}
	}
	meanBT, meanOBT := 0, 0
	if btN > 0 {
		meanBT = btSum / btN
	}
	if obtN > 0 {
		meanOBT = obtSum / obtN
	}
	return meanBT, meanOBT
}

// dropPitcherShadows removes hitter rows that are just the pitcher's
// batting line echoed into the hitting table: same name as a pitcher,
// position P, no batting order.
func dropPitcherShadows(hitters, pitchers []convert.PlayerRow) []convert.PlayerRow {
	pitcherNames := make(map[string]bool, len(pitchers))
	for _, p := range pitchers {
		pitcherNames[p.Name] = true
	}

	out := hitters[:0]
	for _, h := range hitters {
		if pitcherNames[h.Name] && h.Pos == "P" && h.BatOrder == nil {
			continue
		}
		out = append(out, h)
	}
	return out
}
