package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/future-self/internal/core"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	parsed, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("Parse(defaultYAML) failed: %v", err)
	}

	if !reflect.DeepEqual(parsed, DefaultConfig()) {
		t.Errorf("embedded default differs from DefaultConfig():\n%+v\n%+v", parsed, DefaultConfig())
	}
}

func TestParseKeepsIndicatorOrder(t *testing.T) {
	data := []byte(`
decisions:
  - type: side_hustle
    label: Start a side hustle
    indicators:
      stress: 60
      career: 70
      wealth: 55
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if len(cfg.Decisions) != 1 {
		t.Fatalf("Decisions len = %d, want 1", len(cfg.Decisions))
	}
	got := cfg.Decisions[0].Indicators.Core().Names()
	want := []core.Indicator{"stress", "career", "wealth"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("indicator order = %v, want %v", got, want)
	}
	if cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want default %d", cfg.HistoryLimit, DefaultHistoryLimit)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"indicators not a mapping", "decisions:\n  - type: loan\n    indicators: [1, 2]\n"},
		{"non-integer indicator", "decisions:\n  - type: loan\n    indicators:\n      stress: high\n"},
		{"missing type", "decisions:\n  - label: nothing\n"},
		{"duplicate type", "decisions:\n  - type: loan\n  - type: loan\n"},
		{"negative history limit", "history_limit: -1\n"},
		{"bad yaml", "decisions: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(cfg.Decisions) != len(DefaultConfig().Decisions) {
		t.Errorf("Decisions len = %d, want defaults", len(cfg.Decisions))
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("history_limit: 3\ndecisions:\n  - type: investment\n    label: Buy index funds\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.HistoryLimit != 3 {
		t.Errorf("HistoryLimit = %d, want 3", cfg.HistoryLimit)
	}
	if len(cfg.Decisions) != 1 || cfg.Decisions[0].Label != "Buy index funds" {
		t.Errorf("Decisions = %+v", cfg.Decisions)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom file")
	}
}
