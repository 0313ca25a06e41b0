// Package config provides YAML-based configuration loading for Future Self:
// the decision catalog offered to players and a few presentation settings.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/future-self/internal/core"
)

// Config is the top-level configuration file.
type Config struct {
	HistoryLimit int              `yaml:"history_limit"` // Rows shown by the history screen
	Decisions    []DecisionConfig `yaml:"decisions"`
}

// DecisionConfig describes one decision offered to the player.
type DecisionConfig struct {
	Type        string     `yaml:"type"`
	Label       string     `yaml:"label"`
	Description string     `yaml:"description"`
	Indicators  Indicators `yaml:"indicators"`
}

// Indicators is an indicator mapping that keeps the order it was written in.
type Indicators core.Indicators

// UnmarshalYAML decodes a mapping of indicator name to integer value.
func (in *Indicators) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: indicators must be a mapping (line %d)", value.Line)
	}

	out := make(Indicators, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var n int
		if err := valNode.Decode(&n); err != nil {
			return fmt.Errorf("config: indicator %q: %w", keyNode.Value, err)
		}
		out = Indicators(core.Indicators(out).Set(core.Indicator(keyNode.Value), n))
	}

	*in = out
	return nil
}

// Core converts to the core representation.
func (in Indicators) Core() core.Indicators {
	return core.Indicators(in).Clone()
}

// Validate checks the config for entries the catalog cannot use.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Decisions))
	for i, d := range c.Decisions {
		if d.Type == "" {
			return fmt.Errorf("config: decision %d has no type", i+1)
		}
		if seen[d.Type] {
			return fmt.Errorf("config: decision %q listed twice", d.Type)
		}
		seen[d.Type] = true
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative")
	}
	return nil
}
