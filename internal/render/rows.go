package render

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/scorecardlab/deadball/internal/convert"
	"github.com/scorecardlab/deadball/internal/roster"
)

// ErrTemplateMismatch is returned when the scorecard template is
// missing an anchor or table section the renderer needs. Rendering into
// the wrong spot would produce a silently malformed document, so this
// is fatal for the render call.
var ErrTemplateMismatch = errors.New("scorecard template mismatch")

// Section indexes within a side's scorecard container.
const (
	sectionLineup   = 0
	sectionBench    = 1
	sectionPitchers = 2
)

// RenderHTML fills a scorecard HTML template with both lineups and
// returns the completed document.
func RenderHTML(templateHTML string, game roster.Game) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(templateHTML))
	if err != nil {
		return "", fmt.Errorf("parsing scorecard template: %w", err)
	}

	if err := renderSide(doc, game.Away, Away, game.AwayLabel); err != nil {
		return "", err
	}
	if err := renderSide(doc, game.Home, Home, game.HomeLabel); err != nil {
		return "", err
	}

	return doc.Html()
}

func renderSide(doc *goquery.Document, lineup roster.Lineup, side Side, label string) error {
	anchor := doc.Find(fmt.Sprintf("div.%s.scorecard", side)).First()
	if anchor.Length() == 0 {
		return fmt.Errorf("%w: no div.%s.scorecard anchor", ErrTemplateMismatch, side)
	}

	sections := anchor.Find("tbody")
	if sections.Length() < 3 {
		return fmt.Errorf("%w: div.%s.scorecard has %d tbody sections, need 3",
			ErrTemplateMismatch, side, sections.Length())
	}

	sections.Eq(sectionLineup).SetHtml(hitterRows(lineup.Starters, lineupCapacity))
	sections.Eq(sectionBench).SetHtml(hitterRows(lineup.Bench, benchCapacity))
	sections.Eq(sectionPitchers).SetHtml(pitcherRowMarkup(lineup))

	doc.Find(fmt.Sprintf("span.team-label.%s-team-name", side)).SetText(label)
	return nil
}

// hitterRows builds the <tr> markup for a hitter section, capped at the
// section's capacity.
func hitterRows(rows []convert.PlayerRow, capacity int) string {
	var b strings.Builder
	for i, h := range rows {
		if i >= capacity {
			break
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(h.Name),
			html.EscapeString(h.Pos),
			html.EscapeString(h.Hand),
			formatTarget(h.BT),
			formatTarget(h.OBT),
			html.EscapeString(strings.Join(h.Traits, " ")),
		)
	}
	return b.String()
}

func pitcherRowMarkup(lineup roster.Lineup) string {
	var b strings.Builder
	for i, p := range lineup.Pitchers() {
		if i >= pitcherCapacity {
			break
		}
		role := "RP"
		if i == 0 && lineup.StartingPitcher != nil {
			role = "SP"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td></td><td>%s</td></tr>\n",
			role,
			html.EscapeString(p.Name),
			html.EscapeString(p.PD),
			html.EscapeString(p.Hand),
			html.EscapeString(strings.Join(p.Traits, " ")),
		)
	}
	return b.String()
}
