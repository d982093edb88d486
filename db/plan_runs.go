package db

import (
	"database/sql"
	"time"

	"github.com/rohanthewiz/serr"
)

// PlanRun records one execution of a generated plan
type PlanRun struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id,omitempty"`
	Goal       string    `json:"goal"`
	Plan       string    `json:"plan"`   // plan JSON as handed to the executor
	Result     string    `json:"result"` // execution result JSON
	Success    bool      `json:"success"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlanRunStore persists executed plan runs for inspection
type PlanRunStore struct {
	db *DB
}

// NewPlanRunStore creates a new PlanRunStore
func NewPlanRunStore(db *DB) *PlanRunStore {
	return &PlanRunStore{db: db}
}

// SaveRun records a completed plan run
func (s *PlanRunStore) SaveRun(run *PlanRun) error {
	_, err := s.db.Exec(`
		INSERT INTO plan_runs (id, session_id, goal, plan, result, success, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SessionID, run.Goal, run.Plan, run.Result, run.Success, run.DurationMs)
	if err != nil {
		return serr.Wrap(err, "failed to save plan run")
	}
	return nil
}

// GetRun retrieves a plan run by ID. Returns nil if not found.
func (s *PlanRunStore) GetRun(id string) (*PlanRun, error) {
	var run PlanRun
	var sessionID, result sql.NullString
	err := s.db.QueryRow(`
		SELECT id, session_id, goal, plan, result, success, COALESCE(duration_ms, 0), created_at
		FROM plan_runs WHERE id = ?`,
		id).Scan(&run.ID, &sessionID, &run.Goal, &run.Plan, &result,
		&run.Success, &run.DurationMs, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get plan run")
	}
	run.SessionID = sessionID.String
	run.Result = result.String
	return &run, nil
}

// ListRuns returns recent plan runs, newest first
func (s *PlanRunStore) ListRuns(limit int) ([]PlanRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, COALESCE(session_id, ''), goal, plan, COALESCE(result, ''), success,
		       COALESCE(duration_ms, 0), created_at
		FROM plan_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list plan runs")
	}
	defer rows.Close()

	var runs []PlanRun
	for rows.Next() {
		var run PlanRun
		if err := rows.Scan(&run.ID, &run.SessionID, &run.Goal, &run.Plan, &run.Result,
			&run.Success, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan plan run")
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
