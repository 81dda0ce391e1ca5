package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, project_type, status, address, city, budget, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableStringToValue(p.Type),
		nullableStringToValue(p.Status),
		p.Address,
		p.City,
		nullableFloatToValue(p.Budget),
		formatCreatedAt(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, name, project_type, status, address, city, budget, created_at
		FROM projects WHERE id = ?`

	var p domain.Project
	var projectType, status sql.NullString
	var budget sql.NullFloat64
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &projectType, &status,
		&p.Address, &p.City, &budget, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Type = nullableString(projectType)
	p.Status = nullableString(status)
	p.Budget = nullableFloat(budget)
	p.CreatedAt = parseCreatedAt(createdAt)
	return &p, nil
}
