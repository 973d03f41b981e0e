package convert

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		avg  *float64
		want int
		nil_ bool
	}{
		{"three hundred", fp(0.300), 30, false},
		{"four hundred obp", fp(0.400), 40, false},
		{"rounds up", fp(0.2985), 30, false},
		{"rounds down", fp(0.294), 29, false},
		{"zero", fp(0.0), 0, false},
		{"perfect", fp(0.995), 99, false},
		{"batting a thousand", fp(1.0), 99, false},
		{"missing", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Target(tt.avg)
			if tt.nil_ {
				if got != nil {
					t.Errorf("Target(nil source) = %v, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("Target returned nil for present stat")
			}
			if *got != tt.want {
				t.Errorf("Target = %d, want %d", *got, tt.want)
			}
		})
	}
}

func TestTargetRange(t *testing.T) {
	for avg := 0.0; avg <= 1.0001; avg += 0.001 {
		got := Target(fp(avg))
		if got == nil {
			t.Fatalf("Target(%f) = nil", avg)
		}
		if *got < 0 || *got > 99 {
			t.Fatalf("Target(%f) out of [0,99]: %d", avg, *got)
		}
	}
}

func TestParseInnings(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"6.2", 6.0 + 2.0/3.0},
		{"6.1", 6.0 + 1.0/3.0},
		{"6.0", 6.0},
		{"7", 7.0},
		{"0.1", 1.0 / 3.0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseInnings(tt.raw)
			if err != nil {
				t.Fatalf("ParseInnings(%q) error: %v", tt.raw, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseInnings(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}

	if _, err := ParseInnings("six and two thirds"); err == nil {
		t.Error("expected error for unparseable innings")
	}
}

func TestPitchDie(t *testing.T) {
	tests := []struct {
		era  float64
		want string
	}{
		{1.50, "d20"},
		{1.99, "d20"},
		{2.00, "d12"},
		{2.99, "d12"},
		{3.50, "d8"},
		{4.25, "d4"},
		{5.10, "-d4"},
		{6.80, "-d8"},
		{7.00, "-d12"},
		{8.00, "-d20"},
		{12.4, "-d20"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := PitchDie(&tt.era); got != tt.want {
				t.Errorf("PitchDie(%v) = %q, want %q", tt.era, got, tt.want)
			}
		})
	}

	if got := PitchDie(nil); got != "" {
		t.Errorf("PitchDie(nil) = %q, want empty", got)
	}
}

// dieRank orders dice from best (d20) to worst (-d20) for the
// monotonicity check.
func dieRank(die string) int {
	order := []string{"d20", "d12", "d8", "d4", "-d4", "-d8", "-d12", "-d20"}
	for i, d := range order {
		if d == die {
			return i
		}
	}
	return -1
}

func TestPitchDieMonotonic(t *testing.T) {
	prev := -1
	for era := 0.0; era < 12.0; era += 0.05 {
		rank := dieRank(PitchDie(&era))
		if rank < prev {
			t.Fatalf("pitch die got better as ERA rose: ERA %.2f rank %d after rank %d", era, rank, prev)
		}
		prev = rank
	}
}

func TestParseBattingOrder(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		key  float64
	}{
		{"100", "1", 1.0},
		{"502", "5.2", 5.02},
		{"901", "9.1", 9.01},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseBattingOrder(tt.raw)
			if got == nil {
				t.Fatalf("ParseBattingOrder(%q) = nil", tt.raw)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
			if math.Abs(got.SortKey()-tt.key) > 1e-9 {
				t.Errorf("SortKey() = %v, want %v", got.SortKey(), tt.key)
			}
		})
	}

	for _, raw := range []string{"", "abc", "0", "050"} {
		if got := ParseBattingOrder(raw); got != nil {
			t.Errorf("ParseBattingOrder(%q) = %v, want nil", raw, got)
		}
	}

	if OrderKey(nil) != missingOrderKey {
		t.Errorf("OrderKey(nil) = %v, want %v", OrderKey(nil), missingOrderKey)
	}
}

func TestParsePositions(t *testing.T) {
	tests := []struct {
		raw     string
		primary string
		all     []string
	}{
		{"RF", "RF", []string{"RF"}},
		{"PH-RF", "PH", []string{"PH", "RF"}},
		{"7/8", "LF", []string{"LF", "CF"}},
		{"PH-RF-RF", "PH", []string{"PH", "RF"}},
		{"??", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			primary, all := ParsePositions(tt.raw, "")
			if primary != tt.primary {
				t.Errorf("primary = %q, want %q", primary, tt.primary)
			}
			if len(all) != len(tt.all) {
				t.Fatalf("positions = %v, want %v", all, tt.all)
			}
			for i := range all {
				if all[i] != tt.all[i] {
					t.Errorf("positions = %v, want %v", all, tt.all)
					break
				}
			}
		})
	}

	if primary, _ := ParsePositions("", "P"); primary != "P" {
		t.Errorf("default not applied: got %q", primary)
	}
}

func TestHitterTraits(t *testing.T) {
	tests := []struct {
		name string
		stat RawPlayerStat
		want []string
	}{
		{
			"slugger",
			RawPlayerStat{HomeRuns: 40, Doubles: 36, StolenBases: 25, Games: 10},
			[]string{"P++", "C+", "S+"},
		},
		{
			"power plus",
			RawPlayerStat{HomeRuns: 25, Doubles: 20, StolenBases: 5, Games: 10},
			[]string{"P+"},
		},
		{
			"weak bat",
			RawPlayerStat{HomeRuns: 2, Doubles: 4, StolenBases: 0, Games: 140, Aggregate: true},
			[]string{"P−−", "C−", "S−"},
		},
		{
			"power minus band",
			RawPlayerStat{HomeRuns: 7, Doubles: 15, StolenBases: 3, Games: 140, Aggregate: true},
			[]string{"P−"},
		},
		{
			// A hitless single game must not read as a season-long weakness.
			"quiet single game",
			RawPlayerStat{HomeRuns: 0, Doubles: 0, StolenBases: 0, Games: 1},
			nil,
		},
		{
			"durable catcher",
			RawPlayerStat{HomeRuns: 15, Doubles: 20, StolenBases: 2, Games: 135, Position: "C"},
			[]string{"T+"},
		},
		{
			"not durable enough elsewhere",
			RawPlayerStat{HomeRuns: 15, Doubles: 20, StolenBases: 2, Games: 135, Position: "1B"},
			nil,
		},
		{
			"gold glove",
			RawPlayerStat{HomeRuns: 15, Doubles: 20, StolenBases: 2, Games: 10, FieldingPct: fp(0.999)},
			[]string{"D+"},
		},
		{
			"butcher",
			RawPlayerStat{HomeRuns: 15, Doubles: 20, StolenBases: 2, Games: 10, FieldingPct: fp(0.940)},
			[]string{"D−"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HitterTraits(tt.stat)
			if len(got) != len(tt.want) {
				t.Fatalf("traits = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("traits = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestConvertHitter(t *testing.T) {
	row := ConvertHitter(RawPlayerStat{
		Name:         "Mookie Betts",
		Team:         "Los Angeles Dodgers",
		Position:     "RF",
		BattingOrder: "200",
		BatSide:      "R",
		PitchHand:    "R",
		AVG:          fp(0.307),
		OBP:          fp(0.408),
		HomeRuns:     39,
		Doubles:      40,
		StolenBases:  16,
		Games:        152,
		Aggregate:    true,
	})

	if row.Type != Hitter {
		t.Fatalf("Type = %q", row.Type)
	}
	if row.BT == nil || *row.BT != 31 {
		t.Errorf("BT = %v, want 31", row.BT)
	}
	if row.OBT == nil || *row.OBT != 41 {
		t.Errorf("OBT = %v, want 41", row.OBT)
	}
	if row.BatOrder == nil || row.BatOrder.String() != "2" {
		t.Errorf("BatOrder = %v, want 2", row.BatOrder)
	}
	if row.Hand != "R" {
		t.Errorf("Hand = %q, want R", row.Hand)
	}
	wantTraits := []string{"P++", "C+", "T+"}
	if len(row.Traits) != len(wantTraits) {
		t.Fatalf("Traits = %v, want %v", row.Traits, wantTraits)
	}
}

func TestConvertPitcherDerivesRates(t *testing.T) {
	row := ConvertPitcher(RawPlayerStat{
		Name:           "Ace Starter",
		Team:           "Detroit Tigers",
		Position:       "P",
		PitchHand:      "L",
		InningsPitched: "9.0",
		EarnedRuns:     fp(1),
		StrikeOuts:     fp(11),
		Walks:          fp(1),
		GroundOuts:     fp(12),
		AirOuts:        fp(4),
		GamesStarted:   1,
	})

	if row.Type != Pitcher {
		t.Fatalf("Type = %q", row.Type)
	}
	if row.ERA == nil || math.Abs(*row.ERA-1.0) > 1e-9 {
		t.Errorf("ERA = %v, want 1.0", row.ERA)
	}
	if row.PD != "d20" {
		t.Errorf("PD = %q, want d20", row.PD)
	}
	if row.K9 == nil || math.Abs(*row.K9-11.0) > 1e-9 {
		t.Errorf("K9 = %v, want 11.0", row.K9)
	}
	if row.GBPct == nil || *row.GBPct != 75.0 {
		t.Errorf("GBPct = %v, want 75", row.GBPct)
	}

	// 9 full innings in one appearance earns the stamina trait; 11 K/9
	// earns the strikeout trait; 1 BB/9 earns control plus.
	want := map[string]bool{"K+": true, "GB+": true, "CN+": true, "ST+": true}
	for _, trait := range row.Traits {
		if !want[trait] {
			t.Errorf("unexpected trait %q in %v", trait, row.Traits)
		}
		delete(want, trait)
	}
	if len(want) != 0 {
		t.Errorf("missing traits %v from %v", want, row.Traits)
	}
}

func TestConvertPitcherBadInnings(t *testing.T) {
	row := ConvertPitcher(RawPlayerStat{
		Name:           "Mystery Arm",
		InningsPitched: "??",
		EarnedRuns:     fp(3),
	})
	if row.IP != 0 {
		t.Errorf("IP = %v, want 0 after parse failure", row.IP)
	}
	if row.ERA != nil {
		t.Errorf("ERA = %v, want nil when innings unknown", row.ERA)
	}
	if row.PD != "" {
		t.Errorf("PD = %q, want empty for nil ERA", row.PD)
	}
}

func TestSeasonStaminaThresholds(t *testing.T) {
	season := ConvertPitcher(RawPlayerStat{
		Name:           "Workhorse",
		Aggregate:      true,
		InningsPitched: "201.1",
		ERA:            fp(3.2),
	})
	found := false
	for _, trait := range season.Traits {
		if trait == TraitStamina {
			found = true
		}
	}
	if !found {
		t.Errorf("season 201.1 IP should earn ST+: %v", season.Traits)
	}

	cg := ConvertPitcher(RawPlayerStat{
		Name:           "Complete Gamer",
		Aggregate:      true,
		InningsPitched: "150.0",
		CompleteGames:  1,
		ERA:            fp(3.9),
	})
	found = false
	for _, trait := range cg.Traits {
		if trait == TraitStamina {
			found = true
		}
	}
	if !found {
		t.Errorf("any complete game should earn ST+ in season mode: %v", cg.Traits)
	}
}

func TestNormalizeHand(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"L", "L"}, {"Left", "L"}, {"R", "R"}, {"right", "R"},
		{"S", "S"}, {"B", "S"}, {"Switch", "S"}, {"", ""}, {"?", ""},
	}
	for _, tt := range tests {
		if got := NormalizeHand(tt.raw); got != tt.want {
			t.Errorf("NormalizeHand(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTableLookup(t *testing.T) {
	rows := BuildSeason(
		[]RawPlayerStat{{Name: "José Ramírez", AVG: fp(0.280), HomeRuns: 24, Doubles: 36, StolenBases: 20, Games: 152}},
		[]RawPlayerStat{{Name: "Shane Bieber", InningsPitched: "200.0", ERA: fp(2.91)}},
	)
	table := NewTable(rows)

	hitter, ok := table.Hitter("Jose Ramirez")
	if !ok {
		t.Fatal("accent-insensitive hitter lookup failed")
	}
	if hitter.BT == nil || *hitter.BT != 28 {
		t.Errorf("BT = %v, want 28", hitter.BT)
	}

	pitcher, ok := table.Pitcher("Shane Bieber")
	if !ok {
		t.Fatal("pitcher lookup failed")
	}
	if pitcher.PD != "d12" {
		t.Errorf("PD = %q, want d12", pitcher.PD)
	}

	if _, ok := table.Hitter("Nobody Here"); ok {
		t.Error("lookup for absent player should miss")
	}
}
