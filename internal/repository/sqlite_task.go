package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo over both lot_tasks and the legacy
// project_tasks table.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, title, status, start_date, due_date, completed_at, order_index, created_at`

func (r *SQLiteTaskRepo) CreateLotTask(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO lot_tasks (lot_id, ` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := r.insert(ctx, query, t.LotID, t); err != nil {
		return fmt.Errorf("inserting lot task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) CreateProjectTask(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO project_tasks (project_id, ` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := r.insert(ctx, query, t.ProjectID, t); err != nil {
		return fmt.Errorf("inserting project task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) insert(ctx context.Context, query, parentID string, t *domain.Task) error {
	status := t.Status
	if status == "" {
		status = domain.TaskTodo
	}
	_, err := r.db.ExecContext(ctx, query,
		parentID,
		t.ID,
		t.Title,
		string(status),
		nullableStringToValue(t.StartDate),
		nullableStringToValue(t.DueDate),
		nullableStringToValue(t.CompletedAt),
		t.OrderIndex,
		formatCreatedAt(t.CreatedAt),
	)
	return err
}

func (r *SQLiteTaskRepo) ListByLots(ctx context.Context, lotIDs []string) ([]*domain.Task, error) {
	if len(lotIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inPlaceholders(lotIDs)
	query := `SELECT lot_id, ` + taskColumns + `
		FROM lot_tasks WHERE lot_id IN (` + placeholders + `)
		ORDER BY order_index, created_at, id`

	tasks, err := r.query(ctx, query, args, func(t *domain.Task, parent string) { t.LotID = parent })
	if err != nil {
		return nil, fmt.Errorf("listing lot tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) ListLegacyByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT project_id, ` + taskColumns + `
		FROM project_tasks WHERE project_id = ?
		ORDER BY order_index, created_at, id`

	tasks, err := r.query(ctx, query, []interface{}{projectID}, func(t *domain.Task, parent string) { t.ProjectID = parent })
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) query(
	ctx context.Context,
	query string,
	args []interface{},
	setParent func(*domain.Task, string),
) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var parent, status, createdAt string
		var startDate, dueDate, completedAt sql.NullString
		if err := rows.Scan(
			&parent, &t.ID, &t.Title, &status, &startDate, &dueDate, &completedAt,
			&t.OrderIndex, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		setParent(&t, parent)
		t.Status = domain.TaskStatus(status)
		t.StartDate = nullableString(startDate)
		t.DueDate = nullableString(dueDate)
		t.CompletedAt = nullableString(completedAt)
		t.CreatedAt = parseCreatedAt(createdAt)
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
