package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/scorecardlab/deadball/internal/convert"
)

// csvHeader is the fixed column order of an exported Deadball table.
var csvHeader = []string{
	"type", "name", "team", "pos", "order", "hand",
	"bt", "obt", "traits", "pd", "era", "ip",
}

// WriteCSV writes converted rows as a Deadball table CSV. Every cell is
// a string; missing values render empty.
func WriteCSV(w io.Writer, rows []convert.PlayerRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			string(row.Type),
			row.Name,
			row.Team,
			row.Pos,
			orderCell(row.BatOrder),
			row.Hand,
			intCell(row.BT),
			intCell(row.OBT),
			strings.Join(row.Traits, " "),
			row.PD,
			floatCell(row.ERA),
			ipCell(row),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", row.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func orderCell(b *convert.BatOrder) string {
	if b == nil {
		return ""
	}
	return b.String()
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func ipCell(row convert.PlayerRow) string {
	if row.Type != convert.Pitcher || row.IP == 0 {
		return ""
	}
	return strconv.FormatFloat(row.IP, 'f', 1, 64)
}
