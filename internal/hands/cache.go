package hands

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Handedness is a resolved bats/throws pair. Either field may be empty
// when the source only knew half the answer.
type Handedness struct {
	Bats   string
	Throws string
}

// Cache stores resolved handedness under two keyspaces: the stats-feed
// person id and the normalized player name. Implementations must be safe
// for concurrent use.
type Cache interface {
	GetByID(id int) (Handedness, bool)
	GetByName(key string) (Handedness, bool)
	Put(id int, key string, h Handedness)
	Persist() error
}

// fileCachePayload is the on-disk JSON shape. Hand values serialize as
// L|R|S or null so a half-known entry round-trips.
type fileCachePayload struct {
	ByID   map[string][2]*string `json:"fg"`
	ByName map[string][2]*string `json:"name"`
}

// FileCache is a JSON-file-backed Cache. Writes accumulate in memory;
// Persist flushes the whole cache to disk atomically via a temp file.
type FileCache struct {
	mu     sync.RWMutex
	path   string
	byID   map[int]Handedness
	byName map[string]Handedness
	dirty  bool
}

// OpenFileCache loads the cache at path, starting empty when the file
// does not exist yet. A corrupt file is an error, not a silent reset.
func OpenFileCache(path string) (*FileCache, error) {
	c := &FileCache{
		path:   path,
		byID:   make(map[int]Handedness),
		byName: make(map[string]Handedness),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading hands cache: %w", err)
	}

	var payload fileCachePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding hands cache %s: %w", path, err)
	}

	for rawID, pair := range payload.ByID {
		var id int
		if _, err := fmt.Sscanf(rawID, "%d", &id); err != nil || id == 0 {
			continue
		}
		c.byID[id] = handednessFromPair(pair)
	}
	for key, pair := range payload.ByName {
		c.byName[key] = handednessFromPair(pair)
	}
	log.Printf("[hands] loaded cache: %d ids, %d names", len(c.byID), len(c.byName))
	return c, nil
}

func handednessFromPair(pair [2]*string) Handedness {
	var h Handedness
	if pair[0] != nil {
		h.Bats = *pair[0]
	}
	if pair[1] != nil {
		h.Throws = *pair[1]
	}
	return h
}

func pairFromHandedness(h Handedness) [2]*string {
	var pair [2]*string
	if h.Bats != "" {
		pair[0] = &h.Bats
	}
	if h.Throws != "" {
		pair[1] = &h.Throws
	}
	return pair
}

func (c *FileCache) GetByID(id int) (Handedness, bool) {
	if id == 0 {
		return Handedness{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.byID[id]
	return h, ok
}

func (c *FileCache) GetByName(key string) (Handedness, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.byName[key]
	return h, ok
}

// Put records a result under both keyspaces. A zero id or empty key
// skips that keyspace. An entry with both hands known is immutable;
// a partial entry may be completed but not overwritten.
func (c *FileCache) Put(id int, key string, h Handedness) {
	if h.Bats == "" && h.Throws == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != 0 {
		c.byID[id] = mergeEntry(c.byID[id], h)
	}
	if key != "" {
		c.byName[key] = mergeEntry(c.byName[key], h)
	}
	c.dirty = true
}

func mergeEntry(existing, next Handedness) Handedness {
	if existing.Bats == "" {
		existing.Bats = next.Bats
	}
	if existing.Throws == "" {
		existing.Throws = next.Throws
	}
	return existing
}

// Persist writes the cache to disk if anything changed since the last
// flush.
func (c *FileCache) Persist() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	payload := fileCachePayload{
		ByID:   make(map[string][2]*string, len(c.byID)),
		ByName: make(map[string][2]*string, len(c.byName)),
	}
	for id, h := range c.byID {
		payload.ByID[fmt.Sprintf("%d", id)] = pairFromHandedness(h)
	}
	for key, h := range c.byName {
		payload.ByName[key] = pairFromHandedness(h)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding hands cache: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing hands cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing hands cache: %w", err)
	}
	c.dirty = false
	log.Printf("[hands] ✓ persisted cache: %d ids, %d names", len(c.byID), len(c.byName))
	return nil
}
