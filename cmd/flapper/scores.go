package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the leaderboard (best score per player) and recent runs.

With --player, recent runs and stats are limited to that player.

Examples:
  flapper scores
  flapper scores --player alice --limit 5`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show this player's runs")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows per table")
}

var (
	scoresTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoresHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	scoresCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	scoresEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).PaddingLeft(2)
)

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("could not open scores database: %w", err)
	}
	defer store.Close()

	return printScores(cmd.OutOrStdout(), store, flagScoresPlayer, flagScoresLimit)
}

// printScores writes the leaderboard, the recent runs and, for a single
// player, their stats.
func printScores(w io.Writer, store *storage.Store, player string, limit int) error {
	entries, err := store.Leaderboard(limit)
	if err != nil {
		return fmt.Errorf("could not load leaderboard: %w", err)
	}
	runs, err := store.RecentRuns(player, limit)
	if err != nil {
		return fmt.Errorf("could not load runs: %w", err)
	}

	fmt.Fprintln(w, scoresTitleStyle.Render("Leaderboard"))
	if len(entries) == 0 {
		fmt.Fprintln(w, scoresEmptyStyle.Render("No scores recorded yet. Play a game to set a high score!"))
	} else {
		fmt.Fprintln(w, leaderboardTable(entries))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, scoresTitleStyle.Render("Recent runs"))
	if len(runs) == 0 {
		fmt.Fprintln(w, scoresEmptyStyle.Render("No runs yet."))
	} else {
		fmt.Fprintln(w, runsTable(runs))
	}

	if player == "" {
		return nil
	}
	stats, err := store.Stats(player)
	if err != nil {
		return fmt.Errorf("could not load stats: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %d runs, best %d, average %.1f, %s played\n",
		player, stats.Runs, stats.HighScore, stats.AvgScore, stats.TotalTime.Round(time.Second))
	return nil
}

// newScoresTable uses the scoreboard screen's border and header styling.
func newScoresTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return scoresHeaderStyle
			}
			return scoresCellStyle
		})
}

func leaderboardTable(entries []storage.BestEntry) string {
	t := newScoresTable("Rank", "Player", "Best", "Date")
	for i, e := range entries {
		t.Row(
			fmt.Sprintf("#%d", i+1),
			e.Player,
			strconv.Itoa(e.Score),
			e.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t.Render()
}

func runsTable(runs []storage.Run) string {
	t := newScoresTable("Player", "Score", "Tier", "Time", "Date")
	for _, r := range runs {
		t.Row(
			r.Player,
			strconv.Itoa(r.Score),
			r.Tier,
			r.Duration.Round(100*time.Millisecond).String(),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t.Render()
}
