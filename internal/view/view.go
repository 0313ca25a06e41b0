// Package view turns a game state into the text shown to the player.
// It reads state and never changes it.
package view

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
)

// Headings and placeholders used by the dashboard.
const (
	Title           = "Future You"
	GoalPlaceholder = "Not set"
	IndicatorsTitle = "Life Indicators"
	WarningsTitle   = "Warnings"
)

// Summary is the display-ready form of a game state.
type Summary struct {
	Goal        string
	GoalSet     bool
	Probability string
	Indicators  []IndicatorLine
	Warnings    []string
	Decisions   int
}

// IndicatorLine is one "name: value" row.
type IndicatorLine struct {
	Name  string
	Value string
}

// String formats the row as shown on screen.
func (l IndicatorLine) String() string {
	return l.Name + ": " + l.Value
}

// Build derives a Summary from s, evaluating warnings on the way.
func Build(s core.GameState) Summary {
	sum := Summary{
		Goal:        s.Goal,
		GoalSet:     s.Goal != "",
		Probability: fmt.Sprintf("%d%%", s.Probability),
		Indicators:  make([]IndicatorLine, 0, len(s.Indicators)),
		Warnings:    engine.Warnings(s),
		Decisions:   len(s.DecisionHistory),
	}
	if !sum.GoalSet {
		sum.Goal = GoalPlaceholder
	}

	for _, iv := range s.Indicators {
		sum.Indicators = append(sum.Indicators, IndicatorLine{
			Name:  string(iv.Name),
			Value: fmt.Sprintf("%d", iv.Value),
		})
	}

	return sum
}

// Text renders s as plain text.
func Text(s core.GameState) string {
	sum := Build(s)

	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Goal: %s\n", sum.Goal)
	fmt.Fprintf(&b, "Probability: %s\n", sum.Probability)

	b.WriteString("\n")
	b.WriteString(IndicatorsTitle)
	b.WriteString("\n")
	for _, line := range sum.Indicators {
		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(sum.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(WarningsTitle)
		b.WriteString("\n")
		for _, w := range sum.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}

	return b.String()
}
