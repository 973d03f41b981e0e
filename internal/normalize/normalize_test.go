package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"José Ramírez", "jose ramirez"},
		{"Enrique Hernández", "enrique hernandez"},
		{"J.T. Realmuto", "jt realmuto"},
		{"  Mike Trout  ", "mike trout"},
		{"Hyun-Jin Ryu", "hyunjin ryu"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Name(tt.raw)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{"José Ramírez", "Mookie Betts", "ânything at áll", "Víctor Robles Jr."}
	for _, raw := range inputs {
		once := Name(raw)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestTeamKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Tampa Bay Rays", "tampabayrays"},
		{"TampaBayRays", "tampabayrays"},
		{"St. Louis Cardinals", "stlouiscardinals"},
		{"LAD", "lad"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := TeamKey(tt.raw)
			if got != tt.want {
				t.Errorf("TeamKey(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	if TeamKey("Tampa Bay Rays") != TeamKey("TampaBayRays") {
		t.Error("TeamKey should collapse whitespace variants to the same key")
	}
}
