package model

import (
	"sort"
	"time"
)

// Snapshot is the in-memory cache of all loaded players plus the derived
// alliance and server name sets. A snapshot is built once and then only ever
// replaced by reference, never mutated, so concurrent readers always observe
// a complete dataset.
type Snapshot struct {
	Players     []Player  `json:"players"`
	Alliances   []string  `json:"alliances"`
	Servers     []string  `json:"servers"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewSnapshot builds a snapshot from normalized players, deriving the sorted
// duplicate-free alliance and server sets. Empty alliances and the unknown
// server sentinel are excluded from the sets.
func NewSnapshot(players []Player, updated time.Time) *Snapshot {
	return &Snapshot{
		Players:     players,
		Alliances:   distinct(players, func(p Player) string { return p.Alliance }, ""),
		Servers:     distinct(players, func(p Player) string { return p.Server }, UnknownServer),
		LastUpdated: updated,
	}
}

// StaleAt reports whether the snapshot has aged out: stale exactly when
// now - LastUpdated >= maxAge, so a snapshot at the boundary is stale.
func (s *Snapshot) StaleAt(now time.Time, maxAge time.Duration) bool {
	return now.Sub(s.LastUpdated) >= maxAge
}

// PlayerByID returns the player with the given id, if present.
func (s *Snapshot) PlayerByID(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func distinct(players []Player, key func(Player) string, sentinel string) []string {
	seen := make(map[string]struct{}, len(players))
	names := make([]string, 0, len(players))
	for _, p := range players {
		k := key(p)
		if k == "" || k == sentinel {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
