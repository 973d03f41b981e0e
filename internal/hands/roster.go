package hands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/scorecardlab/deadball/internal/convert"
	"github.com/scorecardlab/deadball/internal/normalize"
)

// CSVRoster serves handedness from per-season roster files. The path
// pattern must contain a single %d for the season, e.g.
// "data/rosters/roster_%d.csv". Expected columns are
// id,name,bats,throws with a header row; the id column uses the roster
// publisher's own scheme and is ignored here, lookups key on name.
type CSVRoster struct {
	pattern string

	mu      sync.Mutex
	seasons map[int]map[string]Handedness
}

func NewCSVRoster(pattern string) *CSVRoster {
	return &CSVRoster{
		pattern: pattern,
		seasons: make(map[int]map[string]Handedness),
	}
}

// RosterHands implements RosterSource. A missing roster file for the
// season is not an error; it just means no answer.
func (r *CSVRoster) RosterHands(ctx context.Context, season int, nameKey string) (Handedness, bool, error) {
	table, err := r.season(season)
	if err != nil {
		return Handedness{}, false, err
	}
	h, ok := table[nameKey]
	return h, ok, nil
}

func (r *CSVRoster) season(season int) (map[string]Handedness, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if table, ok := r.seasons[season]; ok {
		return table, nil
	}

	table := make(map[string]Handedness)
	r.seasons[season] = table

	path := fmt.Sprintf(r.pattern, season)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < 4 {
			continue
		}
		key := normalize.Name(record[1])
		if key == "" {
			continue
		}
		table[key] = Handedness{
			Bats:   convert.NormalizeHand(strings.TrimSpace(record[2])),
			Throws: convert.NormalizeHand(strings.TrimSpace(record[3])),
		}
	}

	log.Printf("[hands] loaded %d roster entries for %d from %s", len(table), season, path)
	return table, nil
}
