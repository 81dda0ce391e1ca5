package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		project_type TEXT,
		status       TEXT,
		address      TEXT NOT NULL DEFAULT '',
		city         TEXT NOT NULL DEFAULT '',
		budget       REAL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS lots (
		id               TEXT PRIMARY KEY,
		phase_id         TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		trade_type       TEXT,
		status           TEXT NOT NULL DEFAULT 'planned',
		start_date       TEXT,
		end_date         TEXT,
		progress_pct     INTEGER NOT NULL DEFAULT 0
		                 CHECK(progress_pct BETWEEN 0 AND 100),
		company          TEXT,
		estimated_budget REAL,
		actual_budget    REAL,
		order_index      INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS lot_tasks (
		id           TEXT PRIMARY KEY,
		lot_id       TEXT NOT NULL REFERENCES lots(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'todo'
		             CHECK(status IN ('todo','in_progress','done')),
		start_date   TEXT,
		due_date     TEXT,
		completed_at TEXT,
		order_index  INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	// Flat tasks from before phases and lots existed.
	`CREATE TABLE IF NOT EXISTS project_tasks (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'todo'
		             CHECK(status IN ('todo','in_progress','done')),
		start_date   TEXT,
		due_date     TEXT,
		completed_at TEXT,
		order_index  INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lots_phase ON lots(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lot_tasks_lot ON lot_tasks(lot_id)`,
	`CREATE INDEX IF NOT EXISTS idx_project_tasks_project ON project_tasks(project_id)`,
}
