package catalog

import (
	"testing"

	"github.com/vovakirdan/future-self/internal/config"
	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
)

func TestFromDefaultConfig(t *testing.T) {
	c, err := FromConfig(config.DefaultConfig())
	if err != nil {
		t.Fatalf("FromConfig() failed: %v", err)
	}

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}

	want := map[core.DecisionType]int{
		core.DecisionImpulseSpending: -10,
		core.DecisionInvestment:      8,
		core.DecisionLoan:            -12,
		core.DecisionEmergencyFund:   6,
	}
	for _, o := range c.List() {
		if got := o.Decision().ProbChange; got != want[o.Type] {
			t.Errorf("%s ProbChange = %d, want %d", o.Type, got, want[o.Type])
		}
	}

	// Some default decision must be able to push stress over the warning line.
	maxStress := 0
	for _, o := range c.List() {
		if v, ok := o.Indicators.Get(core.IndicatorStress); ok && v > maxStress {
			maxStress = v
		}
	}
	if maxStress <= engine.HighStressAbove {
		t.Errorf("highest default stress override = %d, want > %d", maxStress, engine.HighStressAbove)
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Option{
		{Type: core.DecisionLoan},
		{Type: core.DecisionLoan},
	})
	if err == nil {
		t.Error("New() should reject duplicate types")
	}

	if _, err := New([]Option{{Label: "no type"}}); err == nil {
		t.Error("New() should reject empty types")
	}
}

func TestLookupAndOrder(t *testing.T) {
	c, err := New([]Option{
		{Type: "side_hustle", Label: "Side hustle"},
		{Type: core.DecisionInvestment},
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	first, ok := c.At(0)
	if !ok || first.Type != "side_hustle" {
		t.Errorf("At(0) = %+v, %v", first, ok)
	}
	if _, ok := c.At(2); ok {
		t.Error("At(2) should be out of range")
	}

	inv, ok := c.Lookup(core.DecisionInvestment)
	if !ok {
		t.Fatal("Lookup(investment) missing")
	}
	if inv.Label != "investment" {
		t.Errorf("empty label should default to type, got %q", inv.Label)
	}

	if !c.Exists("side_hustle") || c.Exists(core.DecisionLoan) {
		t.Error("Exists() mismatch")
	}

	// Custom types are offered but score zero.
	if got := c.DecisionFor("side_hustle").ProbChange; got != 0 {
		t.Errorf("side_hustle ProbChange = %d, want 0", got)
	}
}

func TestDecisionForUnlisted(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	d := c.DecisionFor(core.DecisionLoan)
	if d.ProbChange != -12 || len(d.Indicators) != 0 {
		t.Errorf("DecisionFor(loan) = %+v", d)
	}

	d = c.DecisionFor("moon_shot")
	if d.ProbChange != 0 || d.Type != "moon_shot" {
		t.Errorf("DecisionFor(moon_shot) = %+v", d)
	}
}

func TestDecisionIsIndependentCopy(t *testing.T) {
	c, err := New([]Option{{
		Type:       core.DecisionLoan,
		Indicators: core.Indicators{{Name: core.IndicatorStress, Value: 60}},
	}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	d := c.DecisionFor(core.DecisionLoan)
	d.Indicators[0].Value = 1

	if again := c.DecisionFor(core.DecisionLoan); again.Indicators[0].Value != 60 {
		t.Error("catalog option mutated through returned decision")
	}
}
