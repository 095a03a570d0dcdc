// Package history keeps a local record of fetched plans and finished focus
// sessions in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/studyplan/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS plans (
  id TEXT PRIMARY KEY,
  start_date TEXT,
  end_date TEXT,
  subjects INTEGER NOT NULL,
  days INTEGER NOT NULL,
  payload TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS focus_sessions (
  id TEXT PRIMARY KEY,
  subject TEXT NOT NULL,
  kind TEXT NOT NULL,
  seconds INTEGER NOT NULL,
  completed_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history tables: %w", err)
	}
	return nil
}

// SavePlan stores the request and the full response.
func (s *Store) SavePlan(ctx context.Context, req model.PlanRequest, resp model.PlanResponse) error {
	payload, err := json.Marshal(struct {
		Request  model.PlanRequest  `json:"request"`
		Response model.PlanResponse `json:"response"`
	}{req, resp})
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, start_date, end_date, subjects, days, payload, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), req.StartDate, req.EndDate, len(req.Subjects), len(resp.Plan), string(payload), s.now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

type PlanEntry struct {
	ID        string
	StartDate string
	EndDate   string
	Subjects  int
	Days      int
	CreatedAt time.Time
	Response  model.PlanResponse
}

// Plans lists the most recent plans first.
func (s *Store) Plans(ctx context.Context, limit int) ([]PlanEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, start_date, end_date, subjects, days, payload, created_at FROM plans ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var out []PlanEntry
	for rows.Next() {
		var e PlanEntry
		var payload, created string
		if err := rows.Scan(&e.ID, &e.StartDate, &e.EndDate, &e.Subjects, &e.Days, &payload, &created); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		var body struct {
			Response model.PlanResponse `json:"response"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", e.ID, err)
		}
		e.Response = body.Response
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

type SessionEntry struct {
	ID          string
	Subject     string
	Kind        string
	Seconds     int
	CompletedAt time.Time
}

func (s *Store) RecordSession(ctx context.Context, subject, kind string, seconds int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO focus_sessions (id, subject, kind, seconds, completed_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), subject, kind, seconds, s.now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) Sessions(ctx context.Context, limit int) ([]SessionEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, kind, seconds, completed_at FROM focus_sessions ORDER BY completed_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var completed string
		if err := rows.Scan(&e.ID, &e.Subject, &e.Kind, &e.Seconds, &completed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		e.CompletedAt, _ = time.Parse(time.RFC3339, completed)
		out = append(out, e)
	}
	return out, rows.Err()
}

// FocusTotals sums completed work seconds per subject.
func (s *Store) FocusTotals(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, SUM(seconds) FROM focus_sessions WHERE kind = 'work' GROUP BY subject`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var subject string
		var secs int
		if err := rows.Scan(&subject, &secs); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		out[subject] = secs
	}
	return out, rows.Err()
}
