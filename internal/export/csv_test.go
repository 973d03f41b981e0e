package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/scorecardlab/deadball/internal/convert"
)

func TestWriteCSV(t *testing.T) {
	bt, obt := 31, 41
	era := 2.91
	rows := []convert.PlayerRow{
		{
			Type: convert.Hitter, Name: "Mookie Betts", Team: "LAD", Pos: "RF",
			BatOrder: &convert.BatOrder{Slot: 2}, Hand: "R",
			BT: &bt, OBT: &obt, Traits: []string{"P++", "C+"},
		},
		{
			Type: convert.Pitcher, Name: "Shane Bieber", Team: "CLE", Pos: "P",
			Hand: "R", PD: "d12", ERA: &era, IP: 200,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "type,name,team,pos,order,hand,bt,obt,traits,pd,era,ip" {
		t.Errorf("header = %q", header)
	}

	hitter := records[1]
	if hitter[0] != "hitter" || hitter[1] != "Mookie Betts" || hitter[4] != "2" {
		t.Errorf("hitter row = %v", hitter)
	}
	if hitter[6] != "31" || hitter[8] != "P++ C+" {
		t.Errorf("hitter row = %v", hitter)
	}
	// No pitching columns for a hitter.
	if hitter[9] != "" || hitter[10] != "" || hitter[11] != "" {
		t.Errorf("hitter pitching cells should be empty: %v", hitter)
	}

	pitcher := records[2]
	if pitcher[9] != "d12" || pitcher[10] != "2.91" || pitcher[11] != "200.0" {
		t.Errorf("pitcher row = %v", pitcher)
	}
	// Nullable hitter columns render empty for a pitcher.
	if pitcher[6] != "" || pitcher[7] != "" {
		t.Errorf("pitcher bt/obt should be empty: %v", pitcher)
	}
}
