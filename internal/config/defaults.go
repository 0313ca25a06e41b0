package config

import (
	_ "embed"
)

//go:embed defaults/futureself.yaml
var defaultYAML []byte

// DefaultHistoryLimit is used when the config leaves history_limit unset.
const DefaultHistoryLimit = 10

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		HistoryLimit: DefaultHistoryLimit,
		Decisions: []DecisionConfig{
			{
				Type:        "impulse_spending",
				Label:       "Splurge on something you don't need",
				Description: "Feels great today, costs you tomorrow.",
				Indicators:  Indicators{{Name: "wealth", Value: 35}, {Name: "stress", Value: 75}},
			},
			{
				Type:        "investment",
				Label:       "Invest part of your salary",
				Description: "Put money to work in a diversified fund.",
				Indicators:  Indicators{{Name: "wealth", Value: 65}, {Name: "security", Value: 55}},
			},
			{
				Type:        "loan",
				Label:       "Take out a personal loan",
				Description: "Cash now, monthly payments for years.",
				Indicators:  Indicators{{Name: "wealth", Value: 30}, {Name: "stress", Value: 35}, {Name: "security", Value: 30}},
			},
			{
				Type:        "emergency_fund",
				Label:       "Build an emergency fund",
				Description: "Three months of expenses set aside.",
				Indicators:  Indicators{{Name: "stress", Value: 15}, {Name: "security", Value: 70}},
			},
		},
	}
}
