// futureself is a terminal game about the long-term effect of everyday
// money decisions.
//
// Usage:
//
//	futureself play               - Play an interactive session
//	futureself apply <type>...    - Apply decisions without the TUI and print the result
//	futureself list               - List the decisions on offer
//	futureself history            - Show journaled sessions
//	futureself serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Path to a config YAML (default: search ~/.futureself, ./configs)
//	--db <path>      - Set journal path (default: ~/.futureself/history.db)
//	--verbose        - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/future-self/internal/catalog"
	"github.com/vovakirdan/future-self/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "futureself",
	Short: "Future Self - see where today's decisions lead",
	Long: `Future Self is a terminal game that tracks the probability of reaching
a life goal as you make everyday money decisions.

Available commands:
  play     - Play an interactive session
  apply    - Apply decisions headlessly and print the outcome
  list     - Show the decisions on offer
  history  - View past sessions
  serve    - Start SSH server for remote play

Examples:
  futureself play --goal "Buy a house by 35"
  futureself apply loan impulse_spending
  futureself list
  futureself serve --ssh :2222
  futureself history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.futureself/history.db", "Path to session journal")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the stderr logger shared by commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the config selected by --config or the search order.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// loadCatalog loads the config and builds the decision catalog from it.
func loadCatalog() (config.Config, *catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	cat, err := catalog.FromConfig(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, cat, nil
}
