// Package chart derives chart-ready data shapes from a player list.
//
// Build is a pure mapping from a discrete kind to a {series, categories}
// shape. Unknown kinds are the one hard error in this package; callers are
// expected to substitute Empty() and report the failure so rendering never
// crashes.
package chart

import (
	"fmt"
	"sort"

	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/internal/domain/stats"
)

// Kind names one chart shape.
type Kind string

// Supported chart kinds.
const (
	KindScoreDistribution  Kind = "score_distribution"
	KindChestDistribution  Kind = "chest_distribution"
	KindRatioDistribution  Kind = "ratio_distribution"
	KindAllianceComparison Kind = "alliance_comparison"
	KindServerComparison   Kind = "server_comparison"
	KindTopPlayers         Kind = "top_players"
)

// comparisonTopN caps the alliance comparison at the busiest alliances.
const comparisonTopN = 10

// Series is one named value row of a chart.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// Data is the chart-ready shape handed to renderers.
type Data struct {
	Series     []Series `json:"series"`
	Categories []string `json:"categories"`
}

// Empty returns the shape callers substitute when Build fails: non-nil,
// zero-length slices so the JSON encodes as [] rather than null.
func Empty() Data {
	return Data{Series: []Series{}, Categories: []string{}}
}

// Options is the tagged union of per-kind chart options. Kinds without
// options accept nil.
type Options interface {
	kind() Kind
}

// TopPlayersOptions selects the ranking metric for the top_players chart.
// A zero value ranks by score.
type TopPlayersOptions struct {
	Metric stats.Metric
}

func (TopPlayersOptions) kind() Kind { return KindTopPlayers }

// Build maps kind to its chart shape over players. Players is typically an
// already-filtered list; Build never mutates it.
func Build(kind Kind, players []model.Player, opts Options) (Data, error) {
	switch kind {
	case KindScoreDistribution:
		return distribution(players, scoreBuckets, stats.MetricScore), nil
	case KindChestDistribution:
		return distribution(players, chestBuckets, stats.MetricChests), nil
	case KindRatioDistribution:
		return distribution(players, ratioBuckets, stats.MetricRatio), nil
	case KindAllianceComparison:
		return allianceComparison(players), nil
	case KindServerComparison:
		return serverComparison(players), nil
	case KindTopPlayers:
		metric := stats.MetricScore
		if o, ok := opts.(TopPlayersOptions); ok && o.Metric.Valid() {
			metric = o.Metric
		}
		return topPlayers(players, metric), nil
	default:
		return Empty(), fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// distribution counts players into fixed half-open buckets: lower bound
// inclusive, upper bound exclusive, last bucket unbounded above. Each player
// lands in exactly one bucket.
func distribution(players []model.Player, buckets bucketTable, metric stats.Metric) Data {
	counts := make([]float64, len(buckets.bounds))
	for _, p := range players {
		counts[buckets.index(metric.Value(p))]++
	}
	return Data{
		Series:     []Series{{Name: string(metric), Data: counts}},
		Categories: append([]string(nil), buckets.labels...),
	}
}

// group accumulates one alliance or server column.
type group struct {
	name          string
	count         int
	score, chests float64
}

func collectGroups(players []model.Player, key func(model.Player) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, p := range players {
		k := key(p)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{name: k})
		}
		groups[i].count++
		groups[i].score += p.Score
		groups[i].chests += p.Chests
	}
	return groups
}

// allianceComparison charts the top alliances by player count among the
// given players, with total and average score/chest series.
func allianceComparison(players []model.Player) Data {
	groups := collectGroups(players, func(p model.Player) string { return p.Alliance })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	if len(groups) > comparisonTopN {
		groups = groups[:comparisonTopN]
	}

	d := Data{
		Categories: make([]string, 0, len(groups)),
		Series: []Series{
			{Name: "players"}, {Name: "total_score"}, {Name: "avg_score"},
			{Name: "total_chests"}, {Name: "avg_chests"},
		},
	}
	for _, g := range groups {
		n := float64(g.count)
		d.Categories = append(d.Categories, g.name)
		d.Series[0].Data = append(d.Series[0].Data, n)
		d.Series[1].Data = append(d.Series[1].Data, g.score)
		d.Series[2].Data = append(d.Series[2].Data, g.score/n)
		d.Series[3].Data = append(d.Series[3].Data, g.chests)
		d.Series[4].Data = append(d.Series[4].Data, g.chests/n)
	}
	return d
}

// serverComparison charts every server present in the given players,
// ordered by server name.
func serverComparison(players []model.Player) Data {
	groups := collectGroups(players, func(p model.Player) string { return p.Server })
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })

	d := Data{
		Categories: make([]string, 0, len(groups)),
		Series:     []Series{{Name: "players"}, {Name: "avg_score"}, {Name: "avg_chests"}},
	}
	for _, g := range groups {
		n := float64(g.count)
		d.Categories = append(d.Categories, g.name)
		d.Series[0].Data = append(d.Series[0].Data, n)
		d.Series[1].Data = append(d.Series[1].Data, g.score/n)
		d.Series[2].Data = append(d.Series[2].Data, g.chests/n)
	}
	return d
}

// topPlayers charts the top players by the selected metric, descending and
// stable on ties.
func topPlayers(players []model.Player, metric stats.Metric) Data {
	ranked := stats.Rank(players, metric, stats.TopN)
	d := Data{
		Categories: make([]string, 0, len(ranked)),
		Series:     []Series{{Name: string(metric), Data: make([]float64, 0, len(ranked))}},
	}
	for _, p := range ranked {
		d.Categories = append(d.Categories, p.Name)
		d.Series[0].Data = append(d.Series[0].Data, metric.Value(p))
	}
	return d
}
