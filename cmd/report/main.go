package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/chestboard/internal/domain/stats"
	"github.com/okian/chestboard/internal/report"
)

var (
	baseURL string
	query   report.Query
)

var rootCmd = &cobra.Command{
	Use:   "chestboard-report",
	Short: "Chestboard reporting tool",
	Long:  "Query a running chestboard service and render player and statistics reports.",
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runPlayers,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate statistics with per-group breakdowns",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var topCmd = &cobra.Command{
	Use:   "top [score|chests|ratio]",
	Short: "Show the top players by a metric",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTop,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the service's monitoring snapshot",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	client := report.NewClient(baseURL)
	players, err := client.Players(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("fetch players: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No players matched. Is the dataset loaded? Try 'chestboard-report status'.")
		return nil
	}
	report.PrintPlayerTable(os.Stdout, players)
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	client := report.NewClient(baseURL)
	s, err := client.Statistics(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("fetch statistics: %w", err)
	}
	report.PrintSummary(os.Stdout, s)
	return nil
}

func runTop(cmd *cobra.Command, args []string) error {
	metric := stats.MetricScore
	if len(args) == 1 {
		metric = stats.Metric(args[0])
		if !metric.Valid() {
			return fmt.Errorf("unknown metric %q, want score, chests, or ratio", args[0])
		}
	}

	client := report.NewClient(baseURL)
	s, err := client.Statistics(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("fetch statistics: %w", err)
	}

	ranked := s.TopByScore
	switch metric {
	case stats.MetricChests:
		ranked = s.TopByChests
	case stats.MetricRatio:
		ranked = s.TopByRatio
	}
	report.PrintTopTable(os.Stdout, ranked, metric)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := report.NewClient(baseURL)
	m, err := client.ServiceStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch status: %w", err)
	}
	for _, key := range []string{"started", "reloading", "source", "players", "alliances", "servers", "lastUpdated", "stale"} {
		if v, ok := m[key]; ok {
			fmt.Fprintf(os.Stdout, "%-12s %v\n", key, v)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:9080", "base URL of the chestboard service")
	rootCmd.PersistentFlags().StringVar(&query.Name, "name", "", "filter by name substring")
	rootCmd.PersistentFlags().StringVar(&query.Server, "server", "", "filter by server")
	rootCmd.PersistentFlags().StringVar(&query.Alliance, "alliance", "", "filter by alliance")
	rootCmd.PersistentFlags().StringVar(&query.MinScore, "min-score", "", "minimum score")
	rootCmd.PersistentFlags().StringVar(&query.MaxScore, "max-score", "", "maximum score")

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
