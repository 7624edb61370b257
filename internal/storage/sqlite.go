// Package storage provides SQLite-based persistence for play sessions and
// round results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrUnknownSession is returned when a session ID is not in the database.
	ErrUnknownSession = errors.New("storage: unknown session")
	// ErrAmbiguousSession is returned when an ID prefix matches several sessions.
	ErrAmbiguousSession = errors.New("storage: ambiguous session prefix")
)

// Store manages the SQLite database connection for play history.
type Store struct {
	db *sql.DB
}

// Session is one run through the round catalog.
type Session struct {
	ID         string
	Player     string
	Rounds     int
	Mistakes   int
	StartedAt  time.Time
	FinishedAt time.Time // Zero while in progress
}

// RoundResult is one completed round.
type RoundResult struct {
	ID         int64
	SessionID  string
	Vitamin    string
	RoundIndex int
	Placed     int
	Mistakes   int
	Duration   time.Duration
	CreatedAt  time.Time
}

// VitaminStats aggregates every recorded round of one vitamin.
type VitaminStats struct {
	Vitamin      string
	Plays        int
	Mistakes     int
	AvgMistakes  float64
	BestDuration time.Duration
	LastPlayed   time.Time
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
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			mistakes INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			vitamin TEXT NOT NULL,
			round_index INTEGER NOT NULL,
			placed INTEGER NOT NULL DEFAULT 0,
			mistakes INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_vitamin ON rounds(vitamin);
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

// StartSession records a new session for player and returns its ID.
func (s *Store) StartSession(player string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec("INSERT INTO sessions (id, player) VALUES (?, ?)", id, player); err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	return id, nil
}

// FinishSession stores the final totals of a session.
func (s *Store) FinishSession(id string, rounds, mistakes int) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET rounds = ?, mistakes = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		rounds, mistakes, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: finish %s: %w", id, ErrUnknownSession)
	}
	return nil
}

// SessionByID retrieves a session. Returns nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	var sess Session
	var startedAt, finishedAt any

	err := s.db.QueryRow(
		`SELECT id, player, rounds, mistakes, started_at, finished_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Player, &sess.Rounds, &sess.Mistakes, &startedAt, &finishedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sess.StartedAt = parseTime(startedAt)
	sess.FinishedAt = parseTime(finishedAt)
	return &sess, nil
}

// FindSession resolves a full session ID or a unique prefix of one.
func (s *Store) FindSession(prefix string) (*Session, error) {
	if prefix == "" {
		return nil, ErrUnknownSession
	}
	rows, err := s.db.Query(
		`SELECT id FROM sessions WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating sessions: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, ErrUnknownSession
	case 1:
		sess, err := s.SessionByID(ids[0])
		if err == nil && sess == nil {
			return nil, ErrUnknownSession
		}
		return sess, err
	default:
		return nil, ErrAmbiguousSession
	}
}

// SaveRound records a completed round. Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO rounds (session_id, vitamin, round_index, placed, mistakes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Vitamin, r.RoundIndex, r.Placed, r.Mistakes, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRounds retrieves the most recently saved rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, vitamin, round_index, placed, mistakes, duration_ms, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var results []RoundResult
	for rows.Next() {
		var r RoundResult
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Vitamin, &r.RoundIndex, &r.Placed, &r.Mistakes, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// VitaminStats aggregates recorded rounds per vitamin, ordered by name.
func (s *Store) VitaminStats() ([]VitaminStats, error) {
	rows, err := s.db.Query(
		`SELECT vitamin, COUNT(*), SUM(mistakes), AVG(mistakes), MIN(duration_ms), MAX(created_at)
		 FROM rounds
		 GROUP BY vitamin
		 ORDER BY vitamin`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get vitamin stats: %w", err)
	}
	defer rows.Close()

	var stats []VitaminStats
	for rows.Next() {
		var v VitaminStats
		var bestMS int64
		var lastPlayed any
		if err := rows.Scan(&v.Vitamin, &v.Plays, &v.Mistakes, &v.AvgMistakes, &bestMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.BestDuration = time.Duration(bestMS) * time.Millisecond
		v.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles the datetime shapes the driver hands back: a time.Time
// for typed columns, a string for aggregates.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
