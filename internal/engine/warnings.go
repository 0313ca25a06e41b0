package engine

import "github.com/vovakirdan/future-self/internal/core"

// Warning messages, in evaluation order.
const (
	WarningGoalAtRisk = "Your future goal is at serious risk."
	WarningHighStress = "High stress detected. Repeated risky decisions."
)

// Thresholds are exclusive: a state sitting exactly on one emits nothing.
const (
	RiskProbabilityBelow = 40
	HighStressAbove      = 70
)

// Warnings returns the warnings that apply to s. Each rule is checked
// independently; the result is empty when none apply.
func Warnings(s core.GameState) []string {
	var warnings []string

	if s.Probability < RiskProbabilityBelow {
		warnings = append(warnings, WarningGoalAtRisk)
	}

	if s.Indicators.Value(core.IndicatorStress) > HighStressAbove {
		warnings = append(warnings, WarningHighStress)
	}

	return warnings
}
