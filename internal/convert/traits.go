package convert

import "strings"

// Trait codes. The minus sign is U+2212, matching the published Deadball
// notation rather than ASCII hyphen.
const (
	TraitPowerPlusPlus   = "P++"
	TraitPowerPlus       = "P+"
	TraitPowerMinusMinus = "P−−"
	TraitPowerMinus      = "P−"
	TraitContactPlus     = "C+"
	TraitContactMinus    = "C−"
	TraitSpeedPlus       = "S+"
	TraitSpeedMinus      = "S−"
	TraitDurable         = "T+"
	TraitDefensePlus     = "D+"
	TraitDefenseMinus    = "D−"
	TraitStrikeout       = "K+"
	TraitGroundball      = "GB+"
	TraitControlPlus     = "CN+"
	TraitControlMinus    = "CN−"
	TraitStamina         = "ST+"
)

// Durability thresholds: catchers play fewer games, so their bar is lower.
const (
	durableGamesCatcher = 130
	durableGamesOther   = 150
)

// HitterTraits derives the qualitative trait codes for a hitter row.
// Branches within a stat are mutually exclusive; categories accumulate
// in a fixed order so output is deterministic. The minus branches read
// low season totals, so they only apply to aggregate rows; a 0-HR
// single game says nothing about a hitter's power.
func HitterTraits(stat RawPlayerStat) []string {
	var traits []string

	switch hr := stat.HomeRuns; {
	case hr >= 35:
		traits = append(traits, TraitPowerPlusPlus)
	case hr >= 25:
		traits = append(traits, TraitPowerPlus)
	case !stat.Aggregate:
	case hr < 5:
		traits = append(traits, TraitPowerMinusMinus)
	case hr <= 10:
		traits = append(traits, TraitPowerMinus)
	}

	if stat.Doubles >= 35 {
		traits = append(traits, TraitContactPlus)
	} else if stat.Aggregate && stat.Doubles < 10 {
		traits = append(traits, TraitContactMinus)
	}

	if stat.StolenBases >= 20 {
		traits = append(traits, TraitSpeedPlus)
	} else if stat.Aggregate && stat.StolenBases == 0 {
		traits = append(traits, TraitSpeedMinus)
	}

	threshold := float64(durableGamesOther)
	if strings.Contains(strings.ToUpper(stat.Position), "C") {
		threshold = durableGamesCatcher
	}
	if stat.Games >= threshold {
		traits = append(traits, TraitDurable)
	}

	if fp := stat.FieldingPct; fp != nil {
		if *fp >= 0.998 {
			traits = append(traits, TraitDefensePlus)
		} else if *fp < 0.950 {
			traits = append(traits, TraitDefenseMinus)
		}
	}

	return traits
}

// PitcherTraits derives trait codes for a pitcher row given the parsed
// innings total. Season aggregates use the 200-IP/complete-game stamina
// bar; single-game rows earn ST+ only for a full nine innings pitched.
func PitcherTraits(stat RawPlayerStat, k9, bb9, gbPct *float64, ip float64) []string {
	var traits []string

	if k9 != nil && *k9 >= 10 {
		traits = append(traits, TraitStrikeout)
	}
	if gbPct != nil && *gbPct >= 55 {
		traits = append(traits, TraitGroundball)
	}
	if bb9 != nil {
		if *bb9 < 2 {
			traits = append(traits, TraitControlPlus)
		} else if *bb9 >= 4 {
			traits = append(traits, TraitControlMinus)
		}
	}

	if stat.Aggregate {
		if ip >= 200 || stat.CompleteGames > 0 {
			traits = append(traits, TraitStamina)
		}
	} else if ip >= 9 {
		traits = append(traits, TraitStamina)
	}

	return traits
}
