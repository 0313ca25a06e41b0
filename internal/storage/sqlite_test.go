package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func playedState() core.GameState {
	s := core.InitialState()
	s = core.Reduce(s, core.SetGoal{Goal: "Retire at 50"})
	s = core.Reduce(s, core.ApplyDecision{Decision: core.Decision{
		Type:       core.DecisionLoan,
		ProbChange: -12,
		Indicators: core.Indicators{{Name: core.IndicatorStress, Value: 35}},
	}})
	s = core.Reduce(s, core.ApplyDecision{Decision: core.Decision{
		Type:       core.DecisionImpulseSpending,
		ProbChange: -10,
		Indicators: core.Indicators{{Name: core.IndicatorStress, Value: 75}},
	}})
	return s
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	rec := NewSessionRecord("", "alice", playedState())
	if rec.SessionID == "" {
		t.Fatal("NewSessionRecord() should generate a session ID")
	}

	if _, err := store.SaveSession(rec); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}

	got := sessions[0]
	if got.SessionID != rec.SessionID || got.Player != "alice" || got.Goal != "Retire at 50" {
		t.Errorf("session fields = %+v", got)
	}
	if got.Probability != 48 {
		t.Errorf("Probability = %d, want 48", got.Probability)
	}
	if got.DecisionCount != 2 {
		t.Errorf("DecisionCount = %d, want 2", got.DecisionCount)
	}
	if !reflect.DeepEqual(got.Indicators, rec.Indicators) {
		t.Errorf("Indicators = %v, want %v", got.Indicators, rec.Indicators)
	}
	if !reflect.DeepEqual(got.Warnings, []string{engine.WarningHighStress}) {
		t.Errorf("Warnings = %v", got.Warnings)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	decisions, err := store.SessionDecisions(rec.SessionID)
	if err != nil {
		t.Fatalf("SessionDecisions() failed: %v", err)
	}
	if !reflect.DeepEqual(decisions, rec.Decisions) {
		t.Errorf("decisions = %+v, want %+v", decisions, rec.Decisions)
	}
}

func TestSaveSessionWithoutWarnings(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(NewSessionRecord("s-1", "", core.InitialState())); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	sessions, err := store.RecentSessions(0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 || len(sessions[0].Warnings) != 0 {
		t.Errorf("sessions = %+v", sessions)
	}

	decisions, err := store.SessionDecisions("s-1")
	if err != nil {
		t.Fatalf("SessionDecisions() failed: %v", err)
	}
	if len(decisions) != 0 {
		t.Errorf("Expected no decisions, got %d", len(decisions))
	}
}

func TestSaveSessionDuplicateID(t *testing.T) {
	store := openTestStore(t)

	rec := NewSessionRecord("dup", "", playedState())
	if _, err := store.SaveSession(rec); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := store.SaveSession(rec); err == nil {
		t.Error("SaveSession() should reject a duplicate session ID")
	}

	// The failed save must not leave extra decision rows behind.
	decisions, _ := store.SessionDecisions("dup")
	if len(decisions) != 2 {
		t.Errorf("Expected 2 decisions, got %d", len(decisions))
	}
}

func TestRecentSessionsLimitAndOrder(t *testing.T) {
	store := openTestStore(t)

	for i, goal := range []string{"first", "second", "third"} {
		s := core.Reduce(core.InitialState(), core.SetGoal{Goal: goal})
		s.Probability = 50 + i
		if _, err := store.SaveSession(NewSessionRecord("", "", s)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	sessions, err := store.RecentSessions(2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions with limit, got %d", len(sessions))
	}
	if sessions[0].Goal != "third" || sessions[1].Goal != "second" {
		t.Errorf("Sessions not newest first: %q, %q", sessions[0].Goal, sessions[1].Goal)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Sessions != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, p := range []int{90, 30, 60} {
		s := core.InitialState()
		s.Probability = p
		if _, err := store.SaveSession(NewSessionRecord("", "", s)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Sessions != 3 {
		t.Errorf("Sessions = %d, want 3", stats.Sessions)
	}
	if stats.BestProbability != 90 || stats.WorstProbability != 30 {
		t.Errorf("best/worst = %d/%d, want 90/30", stats.BestProbability, stats.WorstProbability)
	}
	if stats.AvgProbability != 60 {
		t.Errorf("AvgProbability = %v, want 60", stats.AvgProbability)
	}
	if stats.AtRisk != 1 {
		t.Errorf("AtRisk = %d, want 1", stats.AtRisk)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestClearSessions(t *testing.T) {
	store := openTestStore(t)

	rec := NewSessionRecord("gone", "", playedState())
	if _, err := store.SaveSession(rec); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	sessions, _ := store.RecentSessions(10)
	if len(sessions) != 0 {
		t.Errorf("Expected 0 sessions after clear, got %d", len(sessions))
	}
	decisions, _ := store.SessionDecisions("gone")
	if len(decisions) != 0 {
		t.Errorf("Expected 0 decisions after clear, got %d", len(decisions))
	}
}
