// Package catalog holds the decisions a player can choose from.
// Each option becomes a core.Decision whose probability change comes from
// the engine's scoring table.
package catalog

import (
	"fmt"

	"github.com/vovakirdan/future-self/internal/config"
	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
)

// Option is a single selectable decision.
type Option struct {
	Type        core.DecisionType
	Label       string
	Description string
	Indicators  core.Indicators // Overrides applied with the decision
}

// ProbChange returns the scored probability delta for this option.
func (o Option) ProbChange() int {
	return engine.ProbabilityChange(o.Type)
}

// Decision builds the decision to dispatch for this option.
func (o Option) Decision() core.Decision {
	return core.Decision{
		Type:       o.Type,
		ProbChange: o.ProbChange(),
		Indicators: o.Indicators.Clone(),
	}
}

// Catalog is an ordered, read-only list of options keyed by type.
type Catalog struct {
	options []Option
	byType  map[core.DecisionType]int
}

// New builds a catalog from options, keeping their order.
// Returns an error if two options share a type or a type is empty.
func New(options []Option) (*Catalog, error) {
	c := &Catalog{
		options: make([]Option, 0, len(options)),
		byType:  make(map[core.DecisionType]int, len(options)),
	}

	for _, o := range options {
		if o.Type == "" {
			return nil, fmt.Errorf("catalog: option %q has no type", o.Label)
		}
		if _, exists := c.byType[o.Type]; exists {
			return nil, fmt.Errorf("catalog: decision %q already registered", o.Type)
		}
		if o.Label == "" {
			o.Label = string(o.Type)
		}
		o.Indicators = o.Indicators.Clone()

		c.byType[o.Type] = len(c.options)
		c.options = append(c.options, o)
	}

	return c, nil
}

// FromConfig builds a catalog from the decisions section of cfg.
func FromConfig(cfg config.Config) (*Catalog, error) {
	options := make([]Option, 0, len(cfg.Decisions))
	for _, d := range cfg.Decisions {
		options = append(options, Option{
			Type:        core.DecisionType(d.Type),
			Label:       d.Label,
			Description: d.Description,
			Indicators:  d.Indicators.Core(),
		})
	}
	return New(options)
}

// List returns the options in catalog order.
func (c *Catalog) List() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Len returns the number of options.
func (c *Catalog) Len() int {
	return len(c.options)
}

// At returns the option at index i.
func (c *Catalog) At(i int) (Option, bool) {
	if i < 0 || i >= len(c.options) {
		return Option{}, false
	}
	return c.options[i], true
}

// Lookup returns the option registered for t.
func (c *Catalog) Lookup(t core.DecisionType) (Option, bool) {
	i, ok := c.byType[t]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// Exists checks if an option with the given type is registered.
func (c *Catalog) Exists(t core.DecisionType) bool {
	_, ok := c.byType[t]
	return ok
}

// DecisionFor returns the decision for t. Types missing from the catalog
// still produce a decision: it carries no overrides and the scorer's delta
// for t (zero for unknown types).
func (c *Catalog) DecisionFor(t core.DecisionType) core.Decision {
	if o, ok := c.Lookup(t); ok {
		return o.Decision()
	}
	return Option{Type: t}.Decision()
}
