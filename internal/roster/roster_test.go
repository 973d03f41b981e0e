package roster

import (
	"errors"
	"testing"

	"github.com/scorecardlab/deadball/internal/convert"
)

func ip(v int) *int { return &v }

func hitter(name string, order string) convert.PlayerRow {
	return convert.PlayerRow{
		Type:     convert.Hitter,
		Name:     name,
		BatOrder: convert.ParseBattingOrder(order),
		BT:       ip(25),
		OBT:      ip(32),
	}
}

func pitcher(name, pd string, gs float64) convert.PlayerRow {
	return convert.PlayerRow{
		Type:         convert.Pitcher,
		Name:         name,
		Pos:          "P",
		PD:           pd,
		GamesStarted: gs,
	}
}

func TestAssembleStartersAndBench(t *testing.T) {
	rows := []convert.PlayerRow{
		hitter("Leadoff Guy", "100"),
		hitter("Two Hitter", "200"),
		hitter("Pinch Hitter", "201"), // sub in slot 2 -> bench
		hitter("Three Hole", "300"),
		hitter("Cleanup", "400"),
		hitter("Five", "500"),
		hitter("Six", "600"),
		hitter("Seven", "700"),
		hitter("Eight", "800"),
		hitter("Nine", "900"),
		hitter("No Order", ""),
	}

	lineup := Assemble(rows, "Testville")

	if len(lineup.Starters) != 9 {
		t.Fatalf("starters = %d, want 9", len(lineup.Starters))
	}
	if lineup.Starters[0].Name != "Leadoff Guy" {
		t.Errorf("slot 1 = %q", lineup.Starters[0].Name)
	}
	if lineup.Starters[1].Name != "Two Hitter" {
		t.Errorf("slot 2 = %q", lineup.Starters[1].Name)
	}

	if len(lineup.Bench) != 2 {
		t.Fatalf("bench = %v", names(lineup.Bench))
	}
	// Substitutions sort right after their slot; unordered rows sort last.
	if lineup.Bench[0].Name != "Pinch Hitter" || lineup.Bench[1].Name != "No Order" {
		t.Errorf("bench order = %v", names(lineup.Bench))
	}
}

func TestAssembleDuplicateSlotFirstWins(t *testing.T) {
	rows := []convert.PlayerRow{
		hitter("Original Starter", "500"),
		hitter("Also Slot Five", "500"),
	}
	lineup := Assemble(rows, "Testville")

	if len(lineup.Starters) != 1 {
		t.Fatalf("starters = %v", names(lineup.Starters))
	}
	// Name breaks the tie, so "Also Slot Five" sorts first and takes the
	// slot; the other goes to the bench.
	if lineup.Starters[0].Name != "Also Slot Five" {
		t.Errorf("starter = %q", lineup.Starters[0].Name)
	}
	if len(lineup.Bench) != 1 || lineup.Bench[0].Name != "Original Starter" {
		t.Errorf("bench = %v", names(lineup.Bench))
	}
}

func TestAssembleStartingPitcherByGamesStarted(t *testing.T) {
	rows := []convert.PlayerRow{
		pitcher("Closer", "-d4", 0),
		pitcher("The Starter", "-d8", 1),
		pitcher("Middle Relief", "-d4", 0),
	}
	lineup := Assemble(rows, "Testville")

	if lineup.StartingPitcher == nil || lineup.StartingPitcher.Name != "The Starter" {
		t.Fatalf("starting pitcher = %+v", lineup.StartingPitcher)
	}
	if len(lineup.Relievers) != 2 {
		t.Errorf("relievers = %v", names(lineup.Relievers))
	}
}

func TestAssembleStartingPitcherByPitchDie(t *testing.T) {
	rows := []convert.PlayerRow{
		pitcher("Bad Reliever", "-d12", 0),
		pitcher("Good Arm", "d8", 0),
	}
	lineup := Assemble(rows, "Testville")
	if lineup.StartingPitcher == nil || lineup.StartingPitcher.Name != "Good Arm" {
		t.Errorf("starting pitcher = %+v", lineup.StartingPitcher)
	}
}

func TestAssembleStartingPitcherFallbackFirstArrival(t *testing.T) {
	rows := []convert.PlayerRow{
		pitcher("First In", "-d4", 0),
		pitcher("Second In", "-d4", 0),
	}
	lineup := Assemble(rows, "Testville")
	if lineup.StartingPitcher == nil || lineup.StartingPitcher.Name != "First In" {
		t.Errorf("starting pitcher = %+v", lineup.StartingPitcher)
	}
}

func TestPitchersCap(t *testing.T) {
	var rows []convert.PlayerRow
	rows = append(rows, pitcher("SP", "d12", 1))
	for i := 0; i < 14; i++ {
		rows = append(rows, pitcher(string(rune('A'+i))+" Relief", "-d4", 0))
	}
	lineup := Assemble(rows, "Testville")

	staff := lineup.Pitchers()
	if len(staff) != 12 {
		t.Fatalf("staff = %d, want 12", len(staff))
	}
	if staff[0].Name != "SP" {
		t.Errorf("staff[0] = %q, want the starter first", staff[0].Name)
	}
}

func TestTwoWayPromotion(t *testing.T) {
	twoWay := pitcher("Shohei Ohtani", "d12", 1)
	twoWay.Positions = []string{"P", "DH"}
	twoWay.BT = nil

	rows := []convert.PlayerRow{
		hitter("Regular Hitter", "200"),
		twoWay,
	}
	lineup := Assemble(rows, "Testville")

	if len(lineup.Starters) != 2 {
		t.Fatalf("starters = %v", names(lineup.Starters))
	}
	// Slot 1 was free, so the promoted hitter takes it.
	if lineup.Starters[0].Name != "Shohei Ohtani" {
		t.Errorf("slot 1 = %q", lineup.Starters[0].Name)
	}
	if lineup.Starters[0].BT == nil || *lineup.Starters[0].BT != 25 {
		t.Errorf("promoted BT = %v, want team mean 25", lineup.Starters[0].BT)
	}
	// Still pitches too.
	if lineup.StartingPitcher == nil || lineup.StartingPitcher.Name != "Shohei Ohtani" {
		t.Errorf("starting pitcher = %+v", lineup.StartingPitcher)
	}
}

func TestPitcherShadowRowDropped(t *testing.T) {
	shadow := convert.PlayerRow{Type: convert.Hitter, Name: "Just A Pitcher", Pos: "P"}
	rows := []convert.PlayerRow{
		hitter("Real Hitter", "100"),
		shadow,
		pitcher("Just A Pitcher", "d8", 1),
	}
	lineup := Assemble(rows, "Testville")

	for _, h := range append(lineup.Starters, lineup.Bench...) {
		if h.Name == "Just A Pitcher" {
			t.Errorf("pitcher's echoed batting row should be dropped: %v", names(append(lineup.Starters, lineup.Bench...)))
		}
	}
}

func names(rows []convert.PlayerRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func teamRow(name, team string, order string) convert.PlayerRow {
	r := hitter(name, order)
	r.Team = team
	return r
}

func TestResolveSidesExactMatch(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("A One", "Boston Red Sox", "100"),
		teamRow("B One", "New York Yankees", "100"),
	}
	game, err := ResolveSides(rows, []string{"New York Yankees"}, []string{"Boston Red Sox"})
	if err != nil {
		t.Fatal(err)
	}
	if game.Away.Team != "New York Yankees" || game.Home.Team != "Boston Red Sox" {
		t.Errorf("sides = %q / %q", game.Away.Team, game.Home.Team)
	}
}

func TestResolveSidesSubstring(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("A One", "Red Sox", "100"),
		teamRow("B One", "Yankees", "100"),
	}
	game, err := ResolveSides(rows, []string{"New York Yankees"}, []string{"Boston Red Sox"})
	if err != nil {
		t.Fatal(err)
	}
	if game.Away.Team != "Yankees" || game.Home.Team != "Red Sox" {
		t.Errorf("sides = %q / %q", game.Away.Team, game.Home.Team)
	}
}

func TestResolveSidesFallbackCandidate(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("A One", "Boston Red Sox", "100"),
		teamRow("B One", "New York Yankees", "100"),
	}
	// The schedule names are blank; the boxscore labels still match.
	game, err := ResolveSides(rows,
		[]string{"", "New York Yankees"},
		[]string{"", "Boston Red Sox"})
	if err != nil {
		t.Fatal(err)
	}
	if game.Away.Team != "New York Yankees" || game.Home.Team != "Boston Red Sox" {
		t.Errorf("sides = %q / %q", game.Away.Team, game.Home.Team)
	}
	if game.AwayLabel != "New York Yankees" {
		t.Errorf("AwayLabel = %q", game.AwayLabel)
	}
}

func TestResolveSidesExactBeatsEarlierSubstring(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("A One", "Chicago Cubs", "100"),
		teamRow("B One", "Chicago White Sox", "100"),
	}
	// The first candidate only matches by substring (both buckets
	// contain "Chicago"); the second matches a bucket exactly and must
	// win before any substring tier runs.
	game, err := ResolveSides(rows,
		[]string{"Chicago", "Chicago White Sox"},
		[]string{"Chicago Cubs"})
	if err != nil {
		t.Fatal(err)
	}
	if game.Away.Team != "Chicago White Sox" || game.Home.Team != "Chicago Cubs" {
		t.Errorf("sides = %q / %q", game.Away.Team, game.Home.Team)
	}
}

func TestResolveSidesPositionalFallback(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("A One", "Squad Alpha", "100"),
		teamRow("B One", "Squad Beta", "100"),
	}
	game, err := ResolveSides(rows, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if game.Away.Team != "Squad Alpha" || game.Home.Team != "Squad Beta" {
		t.Errorf("sides = %q / %q", game.Away.Team, game.Home.Team)
	}
}

func TestResolveSidesCollisionForcesHomeOff(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("A One", "Chicago Cubs", "100"),
		teamRow("B One", "Chicago White Sox", "100"),
	}
	// Both metadata names contain "Chicago"; exact match disambiguates,
	// but make the home name ambiguous on purpose.
	game, err := ResolveSides(rows, []string{"Chicago Cubs"}, []string{"Chicago Cubs"})
	if err != nil {
		t.Fatal(err)
	}
	if game.Away.Team == game.Home.Team {
		t.Errorf("both sides resolved to %q", game.Away.Team)
	}
}

func TestResolveSidesInsufficientData(t *testing.T) {
	rows := []convert.PlayerRow{
		teamRow("Only One", "Lonely Team", "100"),
	}
	_, err := ResolveSides(rows, nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}
