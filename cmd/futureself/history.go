package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/future-self/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled sessions",
	Long: `Display the most recent journaled sessions and overall statistics.

Examples:
  futureself history
  futureself history --limit 25
  futureself history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 0, "Number of sessions to show (default: history_limit from config)")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every journaled session")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	limit := flagLimit
	if limit <= 0 {
		limit = cfg.HistoryLimit
	}

	// Open session journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}

	if flagClear {
		err = store.ClearSessions()
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Journal cleared.")
		return
	}

	err = printHistory(os.Stdout, store, limit)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}
}

// printHistory writes up to limit recent sessions followed by overall stats.
func printHistory(w io.Writer, store *storage.Store, limit int) error {
	sessions, err := store.RecentSessions(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Past Sessions")
	fmt.Fprintln(w)

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'futureself play' and make a decision to record one!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-16s  %-10s  %5s  %4s  %s\n", "Date", "Player", "Prob", "Dec", "Goal")
	fmt.Fprintf(w, "  %-16s  %-10s  %5s  %4s  %s\n", "----", "------", "----", "---", "----")

	for _, s := range sessions {
		goal := s.Goal
		if goal == "" {
			goal = "-"
		}
		fmt.Fprintf(w, "  %-16s  %-10s  %4d%%  %4d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), truncate(s.Player, 10),
			s.Probability, s.DecisionCount, goal)
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "  %-16s  ! %s\n", "", warning)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sessions: %d  Best: %d%%  Worst: %d%%  Average: %.1f%%  At risk: %d\n",
		stats.Sessions, stats.BestProbability, stats.WorstProbability,
		stats.AvgProbability, stats.AtRisk)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
