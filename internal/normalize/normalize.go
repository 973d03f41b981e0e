package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFKD and drops combining marks so that
// "José Ramírez" and "Jose Ramirez" produce the same key.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Name canonicalizes a player name for fuzzy matching across sources:
// accents removed, everything outside [A-Za-z0-9 ] dropped, lowercased,
// trimmed. Idempotent; empty input yields "".
func Name(raw string) string {
	ascii, _, err := transform.String(stripMarks, raw)
	if err != nil {
		ascii = raw
	}

	var b strings.Builder
	b.Grow(len(ascii))
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return strings.TrimSpace(b.String())
}

// TeamKey canonicalizes a team label. Unlike Name it also strips spaces,
// so "Tampa Bay Rays" and "TampaBayRays" normalize identically.
func TeamKey(raw string) string {
	return strings.ReplaceAll(Name(raw), " ", "")
}
