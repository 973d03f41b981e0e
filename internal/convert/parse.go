package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInnings parses an innings-pitched value. Baseball sources express
// partial innings as outs, not decimals: "6.2" means 6 and 2/3 innings.
// The fractional digit is an outs count 0-2; anything else is treated as
// a plain decimal. Unparseable input returns an error so callers can
// substitute zero.
func ParseInnings(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if whole, frac, ok := strings.Cut(s, "."); ok {
		w, errW := strconv.Atoi(whole)
		f, errF := strconv.Atoi(frac)
		if errW == nil && errF == nil && f >= 0 && f <= 2 {
			return float64(w) + float64(f)/3.0, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing innings %q: %w", raw, err)
	}
	return v, nil
}

// positionCodes maps scoring codes and abbreviations to canonical
// position codes.
var positionCodes = map[string]string{
	"1": "P", "P": "P",
	"2": "C", "C": "C",
	"3": "1B", "1B": "1B",
	"4": "2B", "2B": "2B",
	"5": "3B", "3B": "3B",
	"6": "SS", "SS": "SS",
	"7": "LF", "LF": "LF",
	"8": "CF", "CF": "CF",
	"9": "RF", "RF": "RF",
	"DH": "DH",
	"PH": "PH",
	"PR": "PR",
}

// ParsePositions normalizes a raw position string (e.g. "RF", "PH-RF",
// "7/8") into a primary code and an ordered, de-duplicated list. Tokens
// that map to nothing are skipped; an empty result falls back to def.
func ParsePositions(raw string, def string) (string, []string) {
	tokens := strings.FieldsFunc(strings.ToUpper(raw), func(r rune) bool {
		return r == '-' || r == '/' || r == ','
	})

	var seen []string
	for _, tok := range tokens {
		tok = strings.Trim(tok, "*# ")
		code, ok := positionCodes[tok]
		if !ok {
			continue
		}
		if !containsString(seen, code) {
			seen = append(seen, code)
		}
	}

	if len(seen) == 0 {
		if def == "" {
			return "", nil
		}
		return def, []string{def}
	}
	return seen[0], seen
}

// MergePositions folds extra position codes into an existing list,
// preserving order and dropping duplicates.
func MergePositions(primary string, existing []string, extra []string) (string, []string) {
	out := append([]string(nil), existing...)
	for _, raw := range extra {
		code, ok := positionCodes[strings.ToUpper(strings.TrimSpace(raw))]
		if !ok {
			continue
		}
		if !containsString(out, code) {
			out = append(out, code)
		}
	}
	if primary == "" && len(out) > 0 {
		primary = out[0]
	}
	return primary, out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
