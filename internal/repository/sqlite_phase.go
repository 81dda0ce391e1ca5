package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, ph *domain.Phase) error {
	query := `INSERT INTO phases (id, project_id, name, order_index, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ph.ID, ph.ProjectID, ph.Name, ph.OrderIndex, formatCreatedAt(ph.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	query := `SELECT id, project_id, name, order_index, created_at
		FROM phases WHERE project_id = ? ORDER BY order_index, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		var ph domain.Phase
		var createdAt string
		if err := rows.Scan(&ph.ID, &ph.ProjectID, &ph.Name, &ph.OrderIndex, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		ph.CreatedAt = parseCreatedAt(createdAt)
		phases = append(phases, &ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}
