package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/internal/domain/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintPlayerTable writes the player list as a table.
func PrintPlayerTable(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("NAME", "ALLIANCE", "SERVER", "SCORE", "CHESTS", "RATIO")

	for _, p := range players {
		alliance := p.Alliance
		if alliance == "" {
			alliance = "—"
		}
		table.Append(
			p.Name,
			alliance,
			p.Server,
			fmt.Sprintf("%.0f", p.Score),
			fmt.Sprintf("%.0f", p.Chests),
			fmt.Sprintf("%.2f", p.Ratio),
		)
	}
	table.Render()
}

// PrintSummary writes the aggregate totals as a one-line header followed by
// the per-group breakdown tables.
func PrintSummary(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "\nPlayers: %d  |  Total score: %.0f  |  Avg score: %.1f  |  Avg chests: %.1f  |  Avg ratio: %.2f\n\n",
		s.PlayerCount, s.TotalScore, s.AvgScore, s.AvgChests, s.AvgRatio)

	fmt.Fprintln(w, "By alliance:")
	printBreakdownTable(w, s.ByAlliance)
	fmt.Fprintln(w, "\nBy server:")
	printBreakdownTable(w, s.ByServer)
}

func printBreakdownTable(w io.Writer, groups map[string]stats.Breakdown) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	table := newTable(w)
	table.Header("GROUP", "PLAYERS", "TOTAL_SCORE", "AVG_SCORE", "AVG_CHESTS", "AVG_RATIO")

	for _, name := range names {
		b := groups[name]
		table.Append(
			name,
			strconv.Itoa(b.Count),
			fmt.Sprintf("%.0f", b.TotalScore),
			fmt.Sprintf("%.1f", b.AvgScore),
			fmt.Sprintf("%.1f", b.AvgChests),
			fmt.Sprintf("%.2f", b.AvgRatio),
		)
	}
	table.Render()
}

// PrintTopTable writes a ranked player table with positions.
func PrintTopTable(w io.Writer, players []model.Player, metric stats.Metric) {
	table := newTable(w)
	table.Header("#", "NAME", "ALLIANCE", "SERVER", "SCORE", "CHESTS", "RATIO")

	for i, p := range players {
		alliance := p.Alliance
		if alliance == "" {
			alliance = "—"
		}
		table.Append(
			strconv.Itoa(i+1),
			p.Name,
			alliance,
			p.Server,
			fmt.Sprintf("%.0f", p.Score),
			fmt.Sprintf("%.0f", p.Chests),
			fmt.Sprintf("%.2f", p.Ratio),
		)
	}
	table.Render()
	fmt.Fprintf(w, "Ranked by %s\n", metric)
}
