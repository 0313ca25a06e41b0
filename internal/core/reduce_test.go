package core

import (
	"reflect"
	"testing"
)

type unknownAction struct{}

func (unknownAction) Type() ActionType { return "RESET_EVERYTHING" }

func TestInitialState(t *testing.T) {
	s := InitialState()

	if s.Goal != "" {
		t.Errorf("Goal = %q, want empty", s.Goal)
	}
	if s.Probability != 70 {
		t.Errorf("Probability = %d, want 70", s.Probability)
	}
	if len(s.DecisionHistory) != 0 {
		t.Errorf("DecisionHistory len = %d, want 0", len(s.DecisionHistory))
	}

	want := []Indicator{IndicatorWealth, IndicatorStress, IndicatorSecurity, IndicatorCareer}
	if got := s.Indicators.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("indicator order = %v, want %v", got, want)
	}
	if s.Indicators.Value(IndicatorStress) != 20 {
		t.Errorf("stress = %d, want 20", s.Indicators.Value(IndicatorStress))
	}
}

func TestReduceSetGoal(t *testing.T) {
	s := InitialState()
	s = Reduce(s, ApplyDecision{Decision: Decision{Type: DecisionLoan, ProbChange: -12}})

	next := Reduce(s, SetGoal{Goal: "Buy a house by 35"})

	if next.Goal != "Buy a house by 35" {
		t.Errorf("Goal = %q", next.Goal)
	}
	if next.Probability != s.Probability {
		t.Errorf("Probability changed: %d -> %d", s.Probability, next.Probability)
	}
	if !reflect.DeepEqual(next.Indicators, s.Indicators) {
		t.Errorf("Indicators changed: %v -> %v", s.Indicators, next.Indicators)
	}
	if !reflect.DeepEqual(next.DecisionHistory, s.DecisionHistory) {
		t.Errorf("DecisionHistory changed")
	}
}

func TestReduceApplyDecision(t *testing.T) {
	s := InitialState()

	loan := Decision{
		Type:       DecisionLoan,
		ProbChange: -12,
		Indicators: Indicators{{Name: IndicatorStress, Value: 35}},
	}
	s = Reduce(s, ApplyDecision{Decision: loan})

	if s.Probability != 58 {
		t.Errorf("Probability = %d, want 58", s.Probability)
	}
	if s.Indicators.Value(IndicatorStress) != 35 {
		t.Errorf("stress = %d, want 35", s.Indicators.Value(IndicatorStress))
	}
	if s.Indicators.Value(IndicatorWealth) != 50 {
		t.Errorf("wealth = %d, want 50 (untouched)", s.Indicators.Value(IndicatorWealth))
	}

	impulse := Decision{
		Type:       DecisionImpulseSpending,
		ProbChange: -10,
		Indicators: Indicators{{Name: IndicatorStress, Value: 75}},
	}
	s = Reduce(s, ApplyDecision{Decision: impulse})

	if s.Probability != 48 {
		t.Errorf("Probability = %d, want 48", s.Probability)
	}
	if s.Indicators.Value(IndicatorStress) != 75 {
		t.Errorf("stress = %d, want 75", s.Indicators.Value(IndicatorStress))
	}

	if len(s.DecisionHistory) != 2 {
		t.Fatalf("DecisionHistory len = %d, want 2", len(s.DecisionHistory))
	}
	if s.DecisionHistory[0].Type != DecisionLoan || s.DecisionHistory[1].Type != DecisionImpulseSpending {
		t.Errorf("history order = %v", s.DecisionHistory)
	}
}

func TestReduceUnboundedProbability(t *testing.T) {
	tests := []struct {
		name    string
		changes []int
		want    int
	}{
		{"above 100", []int{20, 20}, 110},
		{"below 0", []int{-50, -50}, -30},
		{"zero change", []int{0}, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := InitialState()
			for _, c := range tt.changes {
				s = Reduce(s, ApplyDecision{Decision: Decision{Type: "custom", ProbChange: c}})
			}
			if s.Probability != tt.want {
				t.Errorf("Probability = %d, want %d", s.Probability, tt.want)
			}
		})
	}
}

func TestReduceNewIndicatorAppends(t *testing.T) {
	s := InitialState()
	s = Reduce(s, ApplyDecision{Decision: Decision{
		Type: DecisionInvestment,
		Indicators: Indicators{
			{Name: "health", Value: 60},
			{Name: IndicatorWealth, Value: 80},
		},
	}})

	want := []Indicator{IndicatorWealth, IndicatorStress, IndicatorSecurity, IndicatorCareer, "health"}
	if got := s.Indicators.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("indicator order = %v, want %v", got, want)
	}
	if s.Indicators.Value(IndicatorWealth) != 80 {
		t.Errorf("wealth = %d, want 80", s.Indicators.Value(IndicatorWealth))
	}
}

func TestReduceUnknownAction(t *testing.T) {
	s := Reduce(InitialState(), SetGoal{Goal: "Retire early"})

	if got := Reduce(s, unknownAction{}); !reflect.DeepEqual(got, s) {
		t.Errorf("unknown action changed state: %+v", got)
	}
	if got := Reduce(s, nil); !reflect.DeepEqual(got, s) {
		t.Errorf("nil action changed state: %+v", got)
	}
	var nilDecision *ApplyDecision
	if got := Reduce(s, nilDecision); !reflect.DeepEqual(got, s) {
		t.Errorf("nil *ApplyDecision changed state: %+v", got)
	}
}

func TestReducePointerVariants(t *testing.T) {
	s := Reduce(InitialState(), &SetGoal{Goal: "Travel"})
	s = Reduce(s, &ApplyDecision{Decision: Decision{Type: DecisionInvestment, ProbChange: 8}})

	if s.Goal != "Travel" || s.Probability != 78 {
		t.Errorf("got goal %q probability %d", s.Goal, s.Probability)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := InitialState()
	before = Reduce(before, ApplyDecision{Decision: Decision{Type: DecisionLoan, ProbChange: -12}})
	snapshot := before.Clone()

	// Two branches from the same state must not share history storage.
	a := Reduce(before, ApplyDecision{Decision: Decision{
		Type:       DecisionInvestment,
		Indicators: Indicators{{Name: IndicatorStress, Value: 99}},
	}})
	b := Reduce(before, ApplyDecision{Decision: Decision{Type: DecisionEmergencyFund}})

	if !reflect.DeepEqual(before, snapshot) {
		t.Errorf("input state mutated: %+v", before)
	}
	if a.DecisionHistory[1].Type != DecisionInvestment || b.DecisionHistory[1].Type != DecisionEmergencyFund {
		t.Errorf("branches share history: a=%v b=%v", a.DecisionHistory, b.DecisionHistory)
	}
}

func TestReduceMalformedDecisionPassesThrough(t *testing.T) {
	d := Decision{Type: "", ProbChange: 1000, Indicators: Indicators{{Name: IndicatorStress, Value: -40}}}
	s := Reduce(InitialState(), ApplyDecision{Decision: d})

	if s.Probability != 1070 {
		t.Errorf("Probability = %d, want 1070", s.Probability)
	}
	if s.Indicators.Value(IndicatorStress) != -40 {
		t.Errorf("stress = %d, want -40", s.Indicators.Value(IndicatorStress))
	}
}
