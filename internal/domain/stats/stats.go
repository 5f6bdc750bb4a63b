// Package stats computes summary statistics over a player list.
//
// Everything here is a single-pass pure computation: callers hand in the
// (possibly filtered) player list plus the full snapshot's alliance and
// server sets, and get a complete Summary back. Nothing is cached between
// calls; the dataset is small enough to recompute on every query.
package stats

import (
	"sort"

	"github.com/okian/chestboard/internal/domain/model"
)

// TopN is the fixed length of the top-player sublists.
const TopN = 10

// Metric selects which player value a ranking is ordered by.
type Metric string

// Supported ranking metrics.
const (
	MetricScore  Metric = "score"
	MetricChests Metric = "chests"
	MetricRatio  Metric = "ratio"
)

// Valid reports whether m names a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricScore, MetricChests, MetricRatio:
		return true
	}
	return false
}

// Value extracts the metric's value from a player.
func (m Metric) Value(p model.Player) float64 {
	switch m {
	case MetricChests:
		return p.Chests
	case MetricRatio:
		return p.Ratio
	default:
		return p.Score
	}
}

// Breakdown aggregates one alliance or server group.
type Breakdown struct {
	Count       int     `json:"count"`
	TotalScore  float64 `json:"total_score"`
	TotalChests float64 `json:"total_chests"`
	AvgScore    float64 `json:"avg_score"`
	AvgChests   float64 `json:"avg_chests"`
	AvgRatio    float64 `json:"avg_ratio"`
}

// Summary holds the aggregate view over one player list. All aggregates are
// zero for an empty list; no division by zero ever happens.
type Summary struct {
	PlayerCount int     `json:"player_count"`
	TotalScore  float64 `json:"total_score"`
	TotalChests float64 `json:"total_chests"`
	TotalRatio  float64 `json:"total_ratio"`
	AvgScore    float64 `json:"avg_score"`
	AvgChests   float64 `json:"avg_chests"`
	AvgRatio    float64 `json:"avg_ratio"`

	TopByScore  []model.Player `json:"top_by_score"`
	TopByChests []model.Player `json:"top_by_chests"`
	TopByRatio  []model.Player `json:"top_by_ratio"`

	// Breakdowns cover every alliance/server known to the full snapshot,
	// zero-valued for groups with no matching players.
	ByAlliance map[string]Breakdown `json:"by_alliance"`
	ByServer   map[string]Breakdown `json:"by_server"`
}

// Compute builds a Summary over players. The alliance and server name sets
// come from the full snapshot so that breakdowns keep a row for every known
// group even when filtering left it empty.
func Compute(players []model.Player, alliances, servers []string) Summary {
	s := Summary{
		PlayerCount: len(players),
		TopByScore:  Rank(players, MetricScore, TopN),
		TopByChests: Rank(players, MetricChests, TopN),
		TopByRatio:  Rank(players, MetricRatio, TopN),
		ByAlliance:  breakdown(players, alliances, func(p model.Player) string { return p.Alliance }),
		ByServer:    breakdown(players, servers, func(p model.Player) string { return p.Server }),
	}
	for _, p := range players {
		s.TotalScore += p.Score
		s.TotalChests += p.Chests
		s.TotalRatio += p.Ratio
	}
	if n := float64(len(players)); n > 0 {
		s.AvgScore = s.TotalScore / n
		s.AvgChests = s.TotalChests / n
		s.AvgRatio = s.TotalRatio / n
	}
	return s
}

// Rank returns up to n players ordered descending by metric. The sort is
// stable: ties keep their original relative order. The input is not mutated.
func Rank(players []model.Player, metric Metric, n int) []model.Player {
	ranked := make([]model.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric.Value(ranked[i]) > metric.Value(ranked[j])
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func breakdown(players []model.Player, names []string, key func(model.Player) string) map[string]Breakdown {
	out := make(map[string]Breakdown, len(names))
	for _, name := range names {
		out[name] = Breakdown{}
	}
	type acc struct {
		count         int
		score, chests float64
		ratio         float64
	}
	sums := make(map[string]acc, len(names))
	for _, p := range players {
		k := key(p)
		if _, known := out[k]; !known {
			continue
		}
		a := sums[k]
		a.count++
		a.score += p.Score
		a.chests += p.Chests
		a.ratio += p.Ratio
		sums[k] = a
	}
	for name, a := range sums {
		b := Breakdown{
			Count:       a.count,
			TotalScore:  a.score,
			TotalChests: a.chests,
		}
		if a.count > 0 {
			n := float64(a.count)
			b.AvgScore = a.score / n
			b.AvgChests = a.chests / n
			b.AvgRatio = a.ratio / n
		}
		out[name] = b
	}
	return out
}
