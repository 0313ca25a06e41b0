// Package core holds the game state of a Future Self session and the
// transition function that evolves it. It has no dependencies on the
// terminal, storage or configuration layers.
package core

// Starting values for every new session.
const (
	InitialProbability = 70
)

// DecisionType tags the kind of a decision. The set is open: unknown types
// are carried through untouched.
type DecisionType string

// Decision types with a known effect on probability.
const (
	DecisionImpulseSpending DecisionType = "impulse_spending"
	DecisionInvestment      DecisionType = "investment"
	DecisionLoan            DecisionType = "loan"
	DecisionEmergencyFund   DecisionType = "emergency_fund"
)

// Decision is a choice made by the player.
type Decision struct {
	Type DecisionType `json:"type"`
	// ProbChange is added to the running probability when applied.
	ProbChange int `json:"probChange"`
	// Indicators overrides indicator values; it is not a delta.
	Indicators Indicators `json:"indicators,omitempty"`
}

// Clone creates a deep copy of the decision.
func (d Decision) Clone() Decision {
	d.Indicators = d.Indicators.Clone()
	return d
}

// GameState is the complete state of one session.
type GameState struct {
	Goal string
	// Probability is a running score, conceptually a percentage.
	// It has no floor or ceiling.
	Probability     int
	Indicators      Indicators
	DecisionHistory []Decision
}

// InitialState returns the state every session starts from.
func InitialState() GameState {
	return GameState{
		Goal:        "",
		Probability: InitialProbability,
		Indicators: Indicators{
			{Name: IndicatorWealth, Value: 50},
			{Name: IndicatorStress, Value: 20},
			{Name: IndicatorSecurity, Value: 40},
			{Name: IndicatorCareer, Value: 50},
		},
		DecisionHistory: []Decision{},
	}
}

// Clone creates a deep copy of the state.
func (s GameState) Clone() GameState {
	out := s
	out.Indicators = s.Indicators.Clone()
	out.DecisionHistory = make([]Decision, len(s.DecisionHistory))
	for i, d := range s.DecisionHistory {
		out.DecisionHistory[i] = d.Clone()
	}
	return out
}

// HasDecisions reports whether any decision has been applied.
func (s GameState) HasDecisions() bool {
	return len(s.DecisionHistory) > 0
}
