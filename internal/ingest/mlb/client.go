package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/scorecardlab/deadball/internal/hands"
)

const (
	// BaseURL is the public stats feed root.
	BaseURL = "https://statsapi.mlb.com/api/v1"

	userAgent = "deadball-scorecard/1.0"
)

// Fetcher performs a single GET and returns the raw body. The HTTP
// fetcher is the default; a caching fetcher can wrap it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches over the network with a plain http.Client.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: 30 * time.Second}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", rawURL, err)
	}
	return body, nil
}

// Client speaks to the stats feed: schedule, boxscore, and player
// lookups. It also implements the handedness resolver's live source
// interfaces.
type Client struct {
	baseURL string
	fetcher Fetcher
}

func NewClient(baseURL string, fetcher Fetcher) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if fetcher == nil {
		fetcher = NewHTTPFetcher()
	}
	return &Client{baseURL: baseURL, fetcher: fetcher}
}

func (c *Client) get(ctx context.Context, rawURL string) (map[string]interface{}, error) {
	body, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}
	return result, nil
}

// Schedule lists the games on a date (YYYY-MM-DD), optionally filtered
// to one team.
func (c *Client) Schedule(ctx context.Context, date, teamQuery string) ([]ScheduledGame, error) {
	u := fmt.Sprintf("%s/schedule?sportId=1&date=%s", c.baseURL, url.QueryEscape(date))
	if id := TeamID(teamQuery); id != 0 {
		u += fmt.Sprintf("&teamId=%d", id)
	}

	data, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule for %s: %w", date, err)
	}

	var games []ScheduledGame
	for _, dateEntry := range extractArray(data, "dates") {
		dateMap, ok := dateEntry.(map[string]interface{})
		if !ok {
			continue
		}
		for _, gameEntry := range extractArray(dateMap, "games") {
			game, ok := gameEntry.(map[string]interface{})
			if !ok {
				continue
			}
			teams := extractMap(game, "teams")
			away := extractMap(extractMap(teams, "away"), "team")
			home := extractMap(extractMap(teams, "home"), "team")
			games = append(games, ScheduledGame{
				GamePk:   extractInt(game, "gamePk"),
				Date:     extractString(dateMap, "date"),
				GameType: extractString(game, "gameType"),
				Status:   extractString(extractMap(game, "status"), "detailedState"),
				AwayName: extractString(away, "name"),
				HomeName: extractString(home, "name"),
				AwayID:   extractInt(away, "id"),
				HomeID:   extractInt(home, "id"),
			})
		}
	}

	log.Printf("[mlb-client] ✓ schedule %s: %d game(s)", date, len(games))
	return games, nil
}

// FindGame locates the game a team played on a date. The team filter on
// the schedule endpoint is best-effort, so the result is re-checked
// against both sides.
func (c *Client) FindGame(ctx context.Context, date, teamQuery string) (ScheduledGame, error) {
	games, err := c.Schedule(ctx, date, teamQuery)
	if err != nil {
		return ScheduledGame{}, err
	}
	for _, g := range games {
		if teamQuery == "" || MatchesTeam(g.AwayName, teamQuery) || MatchesTeam(g.HomeName, teamQuery) {
			return g, nil
		}
	}
	return ScheduledGame{}, fmt.Errorf("no game for %q on %s", teamQuery, date)
}

// Boxscore fetches the full boxscore document for a game.
func (c *Client) Boxscore(ctx context.Context, gamePk int) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/game/%d/boxscore", c.baseURL, gamePk)
	data, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching boxscore %d: %w", gamePk, err)
	}
	return data, nil
}

// Person fetches one player-database record by id.
func (c *Client) Person(ctx context.Context, personID int) (Person, error) {
	u := fmt.Sprintf("%s/people/%d", c.baseURL, personID)
	data, err := c.get(ctx, u)
	if err != nil {
		return Person{}, fmt.Errorf("fetching person %d: %w", personID, err)
	}

	people := extractArray(data, "people")
	if len(people) == 0 {
		return Person{}, fmt.Errorf("person %d not found", personID)
	}
	record, ok := people[0].(map[string]interface{})
	if !ok {
		return Person{}, fmt.Errorf("person %d: malformed record", personID)
	}
	return personFromRecord(record), nil
}

// SearchPerson finds a player by display name. On ambiguity the feed's
// first result wins.
func (c *Client) SearchPerson(ctx context.Context, name string) (Person, error) {
	u := fmt.Sprintf("%s/people/search?names=%s", c.baseURL, url.QueryEscape(name))
	data, err := c.get(ctx, u)
	if err != nil {
		return Person{}, fmt.Errorf("searching person %q: %w", name, err)
	}

	people := extractArray(data, "people")
	if len(people) == 0 {
		return Person{}, nil
	}
	record, ok := people[0].(map[string]interface{})
	if !ok {
		return Person{}, nil
	}
	return personFromRecord(record), nil
}

func personFromRecord(record map[string]interface{}) Person {
	return Person{
		ID:        extractInt(record, "id"),
		FullName:  extractString(record, "fullName"),
		BatSide:   extractString(extractMap(record, "batSide"), "code"),
		PitchHand: extractString(extractMap(record, "pitchHand"), "code"),
	}
}

// PersonHands implements hands.PersonSource.
func (c *Client) PersonHands(ctx context.Context, personID int) (hands.Handedness, error) {
	p, err := c.Person(ctx, personID)
	if err != nil {
		return hands.Handedness{}, err
	}
	return hands.Handedness{Bats: p.BatSide, Throws: p.PitchHand}, nil
}

// SearchHands implements hands.SearchSource.
func (c *Client) SearchHands(ctx context.Context, name string) (hands.Handedness, error) {
	p, err := c.SearchPerson(ctx, name)
	if err != nil {
		return hands.Handedness{}, err
	}
	return hands.Handedness{Bats: p.BatSide, Throws: p.PitchHand}, nil
}
