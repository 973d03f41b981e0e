package hands

import (
	"context"
	"log"

	"github.com/scorecardlab/deadball/internal/convert"
	"github.com/scorecardlab/deadball/internal/normalize"
)

// PersonSource looks a player up by the stats feed's person id.
type PersonSource interface {
	PersonHands(ctx context.Context, personID int) (Handedness, error)
}

// SearchSource looks a player up by display name.
type SearchSource interface {
	SearchHands(ctx context.Context, name string) (Handedness, error)
}

// RosterSource supplies handedness from a season roster table keyed by
// normalized name.
type RosterSource interface {
	RosterHands(ctx context.Context, season int, nameKey string) (Handedness, bool, error)
}

// Resolver fills in missing bats/throws data from an ordered chain of
// sources: the local cache by id, the cache by normalized name, the
// season roster (when a season is known), then the live search and
// person lookups. Source failures are logged and skipped; resolution
// never fails a build, it just leaves the hand blank.
type Resolver struct {
	cache  Cache
	roster RosterSource
	search SearchSource
	person PersonSource
}

// NewResolver builds a resolver. Any source may be nil, in which case
// that step of the chain is skipped.
func NewResolver(cache Cache, roster RosterSource, search SearchSource, person PersonSource) *Resolver {
	return &Resolver{cache: cache, roster: roster, search: search, person: person}
}

// Resolve returns handedness for a player, consulting sources in order.
// Each field resolves independently: a source that only knows the bats
// side still contributes it, and the chain keeps going until both fields
// are filled or the sources run out. Anything newly learned is cached
// under both the id and the normalized name.
func (r *Resolver) Resolve(ctx context.Context, name string, personID, season int) Handedness {
	key := normalize.Name(name)

	var h Handedness
	fromCache := false
	if r.cache != nil {
		if cached, ok := r.cache.GetByID(personID); ok {
			h = merge(h, cached)
			fromCache = true
		}
		if !h.complete() {
			if cached, ok := r.cache.GetByName(key); ok {
				h = merge(h, cached)
				fromCache = true
			}
		}
	}
	if h.complete() {
		return h
	}

	before := h
	h = r.lookup(ctx, h, name, key, personID, season)
	if h != before || !fromCache {
		if (h.Bats != "" || h.Throws != "") && r.cache != nil {
			r.cache.Put(personID, key, h)
		}
	}
	return h
}

func (h Handedness) complete() bool {
	return h.Bats != "" && h.Throws != ""
}

// merge fills the blanks of h from next without overwriting fields an
// earlier source already resolved.
func merge(h, next Handedness) Handedness {
	if h.Bats == "" {
		h.Bats = next.Bats
	}
	if h.Throws == "" {
		h.Throws = next.Throws
	}
	return h
}

func (r *Resolver) lookup(ctx context.Context, h Handedness, name, key string, personID, season int) Handedness {
	if r.roster != nil && season > 0 {
		got, ok, err := r.roster.RosterHands(ctx, season, key)
		if err != nil {
			log.Printf("[hands] roster lookup for %s failed: %v", name, err)
		} else if ok {
			h = merge(h, got)
			if h.complete() {
				return h
			}
		}
	}

	if r.search != nil {
		got, err := r.search.SearchHands(ctx, name)
		if err != nil {
			log.Printf("[hands] name search for %s failed: %v", name, err)
		} else {
			h = merge(h, got)
			if h.complete() {
				return h
			}
		}
	}

	if r.person != nil && personID != 0 {
		got, err := r.person.PersonHands(ctx, personID)
		if err != nil {
			log.Printf("[hands] person lookup for %d failed: %v", personID, err)
		} else {
			h = merge(h, got)
		}
	}

	return h
}

// Apply fills the blank Hand and Throws columns of converted rows in
// place. Hitters show their batting hand; pitchers their throwing hand.
func (r *Resolver) Apply(ctx context.Context, rows []convert.PlayerRow, idFor func(name string) int, season int) {
	for i := range rows {
		row := &rows[i]
		needHitter := row.Type == convert.Hitter && row.Hand == ""
		needPitcher := row.Type == convert.Pitcher && row.Hand == ""
		if !needHitter && !needPitcher {
			continue
		}

		var personID int
		if idFor != nil {
			personID = idFor(row.Name)
		}
		h := r.Resolve(ctx, row.Name, personID, season)

		if needHitter && h.Bats != "" {
			row.Hand = convert.NormalizeHand(h.Bats)
		}
		if needPitcher && h.Throws != "" {
			row.Hand = convert.NormalizeHand(h.Throws)
		}
		if row.Throws == "" && h.Throws != "" {
			row.Throws = convert.NormalizeHand(h.Throws)
		}
	}
}
