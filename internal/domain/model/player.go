// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
)

// Sentinel values substituted during normalization.
const (
	// UnknownServer replaces an absent server name.
	UnknownServer = "Unknown"
)

// Player represents one player's game statistics. Instances are immutable
// once built by Normalize; the ratio is computed there and never updated.
type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Alliance string  `json:"alliance"` // empty string means "none"
	Server   string  `json:"server"`
	Score    float64 `json:"score"`
	Chests   float64 `json:"chests"`
	Ratio    float64 `json:"ratio"` // Score/Chests, exactly 0 when Chests == 0
}

// RawDocument is the wire shape consumed from the data source:
// a JSON object with a players array whose elements may miss any field.
type RawDocument struct {
	Players []RawPlayer `json:"players"`
}

// RawPlayer mirrors one raw dataset entry. Pointer fields distinguish
// "absent" from zero so normalization can apply defaults per field.
type RawPlayer struct {
	ID       *string      `json:"id"`
	Name     *string      `json:"name"`
	Alliance *string      `json:"alliance"`
	Server   *string      `json:"server"`
	Score    *json.Number `json:"score"`
	Chests   *json.Number `json:"chests"`
}

// Normalize maps raw entries to Players, substituting defaults for every
// missing or malformed field. No entry is ever rejected: a completely empty
// object still yields a synthetic player.
func Normalize(raw []RawPlayer) []Player {
	players := make([]Player, 0, len(raw))
	for i, r := range raw {
		p := Player{
			ID:     fmt.Sprintf("player_%d", i),
			Name:   fmt.Sprintf("Unknown Player %d", i),
			Server: UnknownServer,
		}
		if r.ID != nil && *r.ID != "" {
			p.ID = *r.ID
		}
		if r.Name != nil && *r.Name != "" {
			p.Name = *r.Name
		}
		if r.Alliance != nil {
			p.Alliance = *r.Alliance
		}
		if r.Server != nil && *r.Server != "" {
			p.Server = *r.Server
		}
		p.Score = numberOrZero(r.Score)
		p.Chests = numberOrZero(r.Chests)
		p.Ratio = SafeRatio(p.Score, p.Chests)
		players = append(players, p)
	}
	return players
}

// SafeRatio returns score/chests, or exactly 0 when chests is not positive.
// The result is never NaN or infinite.
func SafeRatio(score, chests float64) float64 {
	if chests <= 0 {
		return 0
	}
	return score / chests
}

// numberOrZero parses an optional JSON number, clamping negatives to zero.
// Malformed values fall back to zero per the per-field default rule.
func numberOrZero(n *json.Number) float64 {
	if n == nil {
		return 0
	}
	v, err := n.Float64()
	if err != nil || v < 0 {
		return 0
	}
	return v
}
