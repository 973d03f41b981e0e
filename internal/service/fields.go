package service

import (
	"strconv"
	"strings"

	"github.com/scorecardlab/deadball/internal/convert"
	"github.com/scorecardlab/deadball/internal/render"
	"github.com/scorecardlab/deadball/internal/roster"
	"github.com/scorecardlab/deadball/internal/store"
)

// FieldsFromStored rebuilds the scorecard field map for a past build
// from its persisted rows, without refetching or reconverting.
func FieldsFromStored(game *store.Game, rows []store.PlayerRow) map[string]string {
	g := roster.Game{
		Away:      roster.Lineup{Team: game.AwayTeam},
		Home:      roster.Lineup{Team: game.HomeTeam},
		AwayLabel: game.AwayTeam,
		HomeLabel: game.HomeTeam,
	}

	for _, stored := range rows {
		lineup := &g.Away
		if stored.Side == "home" {
			lineup = &g.Home
		}
		row := rowFromStored(stored)
		switch stored.Section {
		case "lineup":
			lineup.Starters = append(lineup.Starters, row)
		case "bench":
			lineup.Bench = append(lineup.Bench, row)
		case "pitcher":
			if stored.RowIdx == 0 {
				lineup.StartingPitcher = &row
			} else {
				lineup.Relievers = append(lineup.Relievers, row)
			}
		}
	}

	return render.GameFields(g)
}

func rowFromStored(stored store.PlayerRow) convert.PlayerRow {
	row := convert.PlayerRow{
		Type:     convert.PlayerType(stored.PlayerType),
		Name:     stored.Name,
		Pos:      stored.Pos,
		Hand:     stored.Hand,
		BatOrder: parseStoredOrder(stored.BatOrder),
		PD:       stored.PD,
		IP:       stored.IP,
	}
	if stored.Traits != "" {
		row.Traits = strings.Split(stored.Traits, " ")
	}
	if stored.BT.Valid {
		v := int(stored.BT.Int32)
		row.BT = &v
	}
	if stored.OBT.Valid {
		v := int(stored.OBT.Int32)
		row.OBT = &v
	}
	if stored.ERA.Valid {
		v := stored.ERA.Float64
		row.ERA = &v
	}
	return row
}

// parseStoredOrder reads the display form written by storeRow: "5" for
// a starter slot, "5.2" for a substitution.
func parseStoredOrder(raw string) *convert.BatOrder {
	if raw == "" {
		return nil
	}
	slotPart, subPart, _ := strings.Cut(raw, ".")
	slot, err := strconv.Atoi(slotPart)
	if err != nil || slot <= 0 {
		return nil
	}
	sub := 0
	if subPart != "" {
		if sub, err = strconv.Atoi(subPart); err != nil {
			return nil
		}
	}
	return &convert.BatOrder{Slot: slot, Sub: sub}
}
