// Package db provides optional PostgreSQL persistence for run history.
// Runs work fully without a database; when DATABASE_URL is set, each run and
// its final calendar are also recorded for later inspection.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/calendar-agent/internal/artifact"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Run is a recorded calendar generation run.
type Run struct {
	ID             uuid.UUID  `json:"id"`
	Industry       string     `json:"industry"`
	TargetAudience string     `json:"target_audience"`
	ContentGoals   string     `json:"content_goals"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the run-history tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS calendar_runs (
			id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			industry        TEXT NOT NULL,
			target_audience TEXT NOT NULL,
			content_goals   TEXT NOT NULL,
			status          TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at    TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS calendar_artifacts (
			run_id     UUID PRIMARY KEY REFERENCES calendar_runs(id) ON DELETE CASCADE,
			content    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// CreateRun records a new run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, industry, targetAudience, contentGoals string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO calendar_runs (industry, target_audience, content_goals, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		industry, targetAudience, contentGoals,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run as completed or failed.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE calendar_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveCalendar stores the final calendar for a run.
func (db *DB) SaveCalendar(ctx context.Context, runID uuid.UUID, cal *artifact.Calendar) error {
	content, err := json.Marshal(cal)
	if err != nil {
		return fmt.Errorf("failed to marshal calendar: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO calendar_artifacts (run_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (run_id) DO UPDATE SET content = $2, created_at = NOW()`,
		runID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save calendar: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil without error when not found.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, industry, target_audience, content_goals, status, created_at, completed_at
		 FROM calendar_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Industry, &run.TargetAudience, &run.ContentGoals, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, industry, target_audience, content_goals, status, created_at, completed_at
		 FROM calendar_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Industry, &run.TargetAudience, &run.ContentGoals, &run.Status, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetCalendar retrieves the saved calendar for a run. Returns nil without
// error when not found.
func (db *DB) GetCalendar(ctx context.Context, runID uuid.UUID) (*artifact.Calendar, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM calendar_artifacts WHERE run_id = $1`,
		runID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	var cal artifact.Calendar
	if err := json.Unmarshal(content, &cal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar: %w", err)
	}
	return &cal, nil
}
