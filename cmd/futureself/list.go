package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/future-self/internal/catalog"
	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the decisions on offer",
	Long:  `Shows every decision in the catalog with its probability change and indicator overrides.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	_, cat, err := loadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printCatalog(os.Stdout, cat)
}

// printCatalog writes the catalog as a table followed by the scored types.
func printCatalog(w io.Writer, cat *catalog.Catalog) {
	options := cat.List()
	if len(options) == 0 {
		fmt.Fprintln(w, "No decisions available.")
		return
	}

	fmt.Fprintln(w, "Available decisions:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxTypeLen := 4 // "Type" header
	for _, o := range options {
		if len(o.Type) > maxTypeLen {
			maxTypeLen = len(o.Type)
		}
	}

	fmt.Fprintf(w, "  %-*s  %6s  %s\n", maxTypeLen, "Type", "Prob", "Label")
	fmt.Fprintf(w, "  %-*s  %6s  %s\n", maxTypeLen, "----", "----", "-----")

	for _, o := range options {
		label := o.Label
		if !engine.IsKnown(o.Type) {
			label += " (unscored)"
		}
		fmt.Fprintf(w, "  %-*s  %6s  %s\n", maxTypeLen, o.Type, signed(o.ProbChange()), label)
		if len(o.Indicators) > 0 {
			fmt.Fprintf(w, "  %-*s  %6s  sets %s\n", maxTypeLen, "", "", formatOverrides(o.Indicators))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scored types: %s\n", joinTypes(engine.KnownDecisionTypes()))
	fmt.Fprintln(w, "Run 'futureself apply <type>...' or 'futureself play' to decide.")
}

// formatOverrides renders indicator overrides as "a=1, b=2".
func formatOverrides(in core.Indicators) string {
	parts := make([]string, len(in))
	for i, iv := range in {
		parts[i] = fmt.Sprintf("%s=%d", iv.Name, iv.Value)
	}
	return strings.Join(parts, ", ")
}

func joinTypes(types []core.DecisionType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// signed renders n with an explicit sign.
func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
