package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/platform/tui"
	"github.com/vovakirdan/future-self/internal/storage"
)

var (
	flagGoal   string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive session",
	Long: `Start an interactive Future Self session.

Controls:
  Up/Down, k/j  - Select a decision
  Enter/Space   - Apply the selected decision
  G             - Edit your goal (Enter saves, Esc cancels)
  H/Tab         - Past sessions
  ?             - Toggle help
  Q/Ctrl+C      - Quit (the session is saved if you made a decision)

Examples:
  futureself play
  futureself play --goal "Buy a house by 35"
  futureself play --player alice --db ./history.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGoal, "goal", "", "Goal to start with")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with the session (default: current user)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, cat, err := loadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger("futureself")

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open session journal
	journal, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session journal, history is disabled", "path", flagDBPath, "error", err)
		// Continue without storage - the game still works
		journal = nil
	}

	store := core.NewStore()
	if flagGoal != "" {
		store.Dispatch(core.SetGoal{Goal: flagGoal})
	}

	model := tui.NewModel(store, cat, journal, tui.Options{
		Player: playerName(flagPlayer),
		Width:  width,
		Height: height,
	})

	final, runErr := playLoop(model, journal, cfg.HistoryLimit)

	if err := final.SaveErr(); err != nil {
		logger.Warn("session was not saved", "error", err)
	}

	// Close journal before potential exit
	if journal != nil {
		journal.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playLoop alternates between the game and history screens until the
// player quits, and returns the final game model.
func playLoop(model tui.Model, journal *storage.Store, historyLimit int) (tui.Model, error) {
	for {
		res, err := tui.Run(model)
		model = res.Model
		if err != nil {
			return model, err
		}
		if !res.WantsHistory {
			return model, nil
		}

		w, h := model.Size()
		goBack, err := tui.RunHistory(journal, historyLimit, w, h)
		if err != nil {
			return model, err
		}
		if !goBack {
			// Quitting from history still journals the session
			return model.Finish(), nil
		}
	}
}

// playerName returns name, falling back to the OS user.
func playerName(name string) string {
	if name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
