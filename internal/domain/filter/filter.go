// Package filter narrows a player list with an optional set of predicates.
//
// All predicates are conjunctive and every field is optional: an unset field
// means "no constraint". Numeric bounds typed as strings (query parameters)
// degrade to "no constraint" when unparseable instead of erroring.
package filter

import (
	"strconv"
	"strings"

	"github.com/okian/chestboard/internal/domain/model"
)

// Spec holds the optional predicates for one query. Nil bounds are
// unbounded; an explicit bound of 0 is a real constraint.
type Spec struct {
	Name     string // case-insensitive substring match
	Server   string // exact match
	Alliance string // exact match

	MinScore  *float64
	MaxScore  *float64
	MinChests *float64
	MaxChests *float64
	MinRatio  *float64
	MaxRatio  *float64
}

// IsZero reports whether the spec constrains nothing.
func (s Spec) IsZero() bool {
	return s.Name == "" && s.Server == "" && s.Alliance == "" &&
		s.MinScore == nil && s.MaxScore == nil &&
		s.MinChests == nil && s.MaxChests == nil &&
		s.MinRatio == nil && s.MaxRatio == nil
}

// Apply returns the players matching every set predicate, in their original
// order. The input slice is never mutated; the result is always a new slice.
func Apply(players []model.Player, spec Spec) []model.Player {
	out := make([]model.Player, 0, len(players))
	name := strings.ToLower(spec.Name)
	for _, p := range players {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if spec.Server != "" && p.Server != spec.Server {
			continue
		}
		if spec.Alliance != "" && p.Alliance != spec.Alliance {
			continue
		}
		if !inRange(p.Score, spec.MinScore, spec.MaxScore) {
			continue
		}
		if !inRange(p.Chests, spec.MinChests, spec.MaxChests) {
			continue
		}
		if !inRange(p.Ratio, spec.MinRatio, spec.MaxRatio) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// inRange checks an inclusive range where either bound may be absent.
func inRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// ParseSpec builds a Spec from string-typed inputs such as URL query
// parameters. Unparseable numeric bounds are dropped, so invalid filter
// input behaves like no filter at all. An explicit "0" is kept as a bound.
func ParseSpec(get func(string) string) Spec {
	return Spec{
		Name:      strings.TrimSpace(get("name")),
		Server:    strings.TrimSpace(get("server")),
		Alliance:  strings.TrimSpace(get("alliance")),
		MinScore:  parseBound(get("min_score")),
		MaxScore:  parseBound(get("max_score")),
		MinChests: parseBound(get("min_chests")),
		MaxChests: parseBound(get("max_chests")),
		MinRatio:  parseBound(get("min_ratio")),
		MaxRatio:  parseBound(get("max_ratio")),
	}
}

func parseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
