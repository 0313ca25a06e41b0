package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/future-self/internal/catalog"
	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
	"github.com/vovakirdan/future-self/internal/storage"
	"github.com/vovakirdan/future-self/internal/view"
)

var flagRecord bool

var applyCmd = &cobra.Command{
	Use:   "apply <type>...",
	Short: "Apply decisions without the TUI",
	Long: `Apply one or more decisions in order to a fresh session and print the result.

Types not in the catalog are still applied, with no probability change and
no indicator overrides.

Examples:
  futureself apply investment
  futureself apply loan impulse_spending
  futureself apply --goal "Retire at 55" investment emergency_fund
  futureself apply --record --player alice loan`,
	Args: cobra.MinimumNArgs(1),
	Run:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&flagGoal, "goal", "", "Goal to set before applying decisions")
	applyCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with the session (default: current user)")
	applyCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session to the journal")
}

func runApply(cmd *cobra.Command, args []string) {
	_, cat, err := loadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger("futureself")
	state := applyDecisions(cat, flagGoal, args, logger)

	if err := printState(os.Stdout, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagRecord {
		return
	}

	journal, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer journal.Close()

	rec := storage.NewSessionRecord("", playerName(flagPlayer), state)
	if _, err := journal.SaveSession(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session recorded", "session", rec.SessionID, "decisions", rec.DecisionCount)
}

// applyDecisions runs a fresh store through the given decision types in order.
func applyDecisions(cat *catalog.Catalog, goal string, types []string, logger *log.Logger) core.GameState {
	store := core.NewStore()
	store.Subscribe(func(a core.Action, s core.GameState) {
		if act, ok := a.(core.ApplyDecision); ok {
			logger.Debug("decision applied", "type", act.Decision.Type, "probability", s.Probability)
		}
	})

	if goal != "" {
		store.Dispatch(core.SetGoal{Goal: goal})
	}

	for _, t := range types {
		dt := core.DecisionType(t)
		if !cat.Exists(dt) {
			logger.Warn("decision not in catalog, applying with no effect",
				"type", t, "scored", joinTypes(engine.KnownDecisionTypes()))
		}
		store.Dispatch(core.ApplyDecision{Decision: cat.DecisionFor(dt)})
	}

	return store.State()
}

func printState(w io.Writer, s core.GameState) error {
	_, err := io.WriteString(w, view.Text(s))
	return err
}
