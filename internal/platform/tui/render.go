package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/future-self/internal/catalog"
	"github.com/vovakirdan/future-self/internal/engine"
	"github.com/vovakirdan/future-self/internal/view"
)

// Dashboard styles.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// probabilityStyle picks a color for a probability score.
func probabilityStyle(p int) lipgloss.Style {
	switch {
	case p < engine.RiskProbabilityBelow:
		return badStyle
	case p < 60:
		return fairStyle
	default:
		return goodStyle
	}
}

// RenderDashboard renders the goal, probability, indicators and warnings.
func RenderDashboard(sum view.Summary, probability int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(view.Title))
	b.WriteString("\n\n")

	goal := sum.Goal
	if !sum.GoalSet {
		goal = mutedStyle.Render(goal)
	}
	b.WriteString(labelStyle.Render("Goal: "))
	b.WriteString(goal)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Probability: "))
	b.WriteString(probabilityStyle(probability).Bold(true).Render(sum.Probability))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Decisions made: "))
	fmt.Fprintf(&b, "%d", sum.Decisions)
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render(view.IndicatorsTitle))
	for _, line := range sum.Indicators {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(line.Name + ": "))
		b.WriteString(line.Value)
	}

	if len(sum.Warnings) > 0 {
		b.WriteString("\n\n")
		b.WriteString(headingStyle.Render(view.WarningsTitle))
		for _, w := range sum.Warnings {
			b.WriteString("\n")
			b.WriteString(warningStyle.Render("! " + w))
		}
	}

	return panelStyle.Render(b.String())
}

// RenderDecisions renders the decision picker with the cursor row highlighted.
func RenderDecisions(options []catalog.Option, cursor int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Decisions"))

	if len(options) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No decisions configured."))
		return panelStyle.Render(b.String())
	}

	for i, o := range options {
		line := fmt.Sprintf("%-38s %s", o.Label, formatDelta(o.ProbChange()))
		b.WriteString("\n")
		if i == cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}

	if cursor >= 0 && cursor < len(options) && options[cursor].Description != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(options[cursor].Description))
	}

	return panelStyle.Render(b.String())
}

// formatDelta renders a probability change with an explicit sign.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
