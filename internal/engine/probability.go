// Package engine scores decisions and derives warnings from a game state.
// Everything here is pure.
package engine

import "github.com/vovakirdan/future-self/internal/core"

// probabilityTable maps decision types to their probability delta.
var probabilityTable = map[core.DecisionType]int{
	core.DecisionImpulseSpending: -10,
	core.DecisionInvestment:      8,
	core.DecisionLoan:            -12,
	core.DecisionEmergencyFund:   6,
}

// knownTypes keeps the table keys in display order.
var knownTypes = []core.DecisionType{
	core.DecisionImpulseSpending,
	core.DecisionInvestment,
	core.DecisionLoan,
	core.DecisionEmergencyFund,
}

// ProbabilityChange returns the probability delta for a decision type.
// Unknown types yield 0.
func ProbabilityChange(t core.DecisionType) int {
	return probabilityTable[t]
}

// IsKnown reports whether t has an entry in the scoring table.
func IsKnown(t core.DecisionType) bool {
	_, ok := probabilityTable[t]
	return ok
}

// KnownDecisionTypes returns the scored decision types in a stable order.
func KnownDecisionTypes() []core.DecisionType {
	out := make([]core.DecisionType, len(knownTypes))
	copy(out, knownTypes)
	return out
}
