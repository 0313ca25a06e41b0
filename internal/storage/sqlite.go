// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/engine"
)

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is the journaled outcome of one session.
type SessionRecord struct {
	ID            int64
	SessionID     string
	Player        string
	Goal          string
	Probability   int
	Indicators    core.Indicators
	Warnings      []string
	DecisionCount int
	Decisions     []core.Decision // Only filled by callers that load them
	CreatedAt     time.Time
}

// NewSessionRecord captures the final state of a session.
// An empty sessionID gets a random UUID.
func NewSessionRecord(sessionID, player string, s core.GameState) SessionRecord {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return SessionRecord{
		SessionID:     sessionID,
		Player:        player,
		Goal:          s.Goal,
		Probability:   s.Probability,
		Indicators:    s.Indicators.Clone(),
		Warnings:      engine.Warnings(s),
		DecisionCount: len(s.DecisionHistory),
		Decisions:     s.Clone().DecisionHistory,
	}
}

// Stats contains aggregated statistics over all journaled sessions.
type Stats struct {
	Sessions         int
	BestProbability  int
	WorstProbability int
	AvgProbability   float64
	AtRisk           int // Sessions that ended below the risk threshold
	LastPlayed       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			goal TEXT NOT NULL DEFAULT '',
			probability INTEGER NOT NULL,
			indicators TEXT NOT NULL DEFAULT '[]',
			warnings TEXT NOT NULL DEFAULT '[]',
			decision_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player);

		CREATE TABLE IF NOT EXISTS session_decisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			prob_change INTEGER NOT NULL,
			indicators TEXT NOT NULL DEFAULT '[]',
			UNIQUE(session_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and its decisions in one transaction.
// Returns the row ID of the session.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}

	indicators, err := encodeJSON(rec.Indicators, "[]")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode indicators: %w", err)
	}
	warnings, err := encodeJSON(rec.Warnings, "[]")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode warnings: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	count := rec.DecisionCount
	if len(rec.Decisions) > count {
		count = len(rec.Decisions)
	}

	result, err := tx.Exec(
		`INSERT INTO sessions
		 (session_id, player, goal, probability, indicators, warnings, decision_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Player, rec.Goal, rec.Probability, indicators, warnings, count,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, d := range rec.Decisions {
		overrides, err := encodeJSON(d.Indicators, "[]")
		if err != nil {
			return 0, fmt.Errorf("storage: cannot encode decision %d: %w", i+1, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO session_decisions (session_id, seq, type, prob_change, indicators)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.SessionID, i+1, string(d.Type), d.ProbChange, overrides,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save decision %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recently journaled sessions, newest first.
// Decisions are not loaded; use SessionDecisions for that.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, goal, probability, indicators, warnings, decision_count, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var indicators, warnings string
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.Player,
			&rec.Goal,
			&rec.Probability,
			&indicators,
			&warnings,
			&rec.DecisionCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(indicators), &rec.Indicators); err != nil {
			return nil, fmt.Errorf("storage: cannot decode indicators of %s: %w", rec.SessionID, err)
		}
		if err := json.Unmarshal([]byte(warnings), &rec.Warnings); err != nil {
			return nil, fmt.Errorf("storage: cannot decode warnings of %s: %w", rec.SessionID, err)
		}
		rec.CreatedAt = parseTime(createdAt)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SessionDecisions retrieves the decisions of a session in application order.
func (s *Store) SessionDecisions(sessionID string) ([]core.Decision, error) {
	rows, err := s.db.Query(
		`SELECT type, prob_change, indicators
		 FROM session_decisions
		 WHERE session_id = ?
		 ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []core.Decision
	for rows.Next() {
		var d core.Decision
		var decisionType, overrides string
		if err := rows.Scan(&decisionType, &d.ProbChange, &overrides); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.Type = core.DecisionType(decisionType)
		if err := json.Unmarshal([]byte(overrides), &d.Indicators); err != nil {
			return nil, fmt.Errorf("storage: cannot decode decision indicators: %w", err)
		}
		decisions = append(decisions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return decisions, nil
}

// Stats retrieves aggregated statistics over all sessions.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(probability), 0), COALESCE(MIN(probability), 0),
		        COALESCE(AVG(probability), 0),
		        COALESCE(SUM(CASE WHEN probability < ? THEN 1 ELSE 0 END), 0)
		 FROM sessions`,
		engine.RiskProbabilityBelow,
	).Scan(&stats.Sessions, &stats.BestProbability, &stats.WorstProbability, &stats.AvgProbability, &stats.AtRisk)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearSessions deletes every journaled session and decision.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM session_decisions"); err != nil {
		return fmt.Errorf("storage: cannot clear decisions: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// encodeJSON marshals v, using empty for nil values.
func encodeJSON(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
