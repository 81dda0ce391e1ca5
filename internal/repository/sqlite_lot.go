package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLiteLotRepo implements LotRepo using a SQLite database.
type SQLiteLotRepo struct {
	db db.DBTX
}

// NewSQLiteLotRepo creates a new SQLiteLotRepo.
func NewSQLiteLotRepo(conn db.DBTX) *SQLiteLotRepo {
	return &SQLiteLotRepo{db: conn}
}

func (r *SQLiteLotRepo) Create(ctx context.Context, l *domain.Lot) error {
	query := `INSERT INTO lots (id, phase_id, name, trade_type, status, start_date, end_date,
		progress_pct, company, estimated_budget, actual_budget, order_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := l.Status
	if status == "" {
		status = domain.LotPlanned
	}
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.PhaseID,
		l.Name,
		nullableStringToValue(l.TradeType),
		string(status),
		nullableStringToValue(l.StartDate),
		nullableStringToValue(l.EndDate),
		l.ProgressPct,
		nullableStringToValue(l.Company),
		nullableFloatToValue(l.EstimatedBudget),
		nullableFloatToValue(l.ActualBudget),
		l.OrderIndex,
		formatCreatedAt(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting lot: %w", err)
	}
	return nil
}

func (r *SQLiteLotRepo) ListByPhases(ctx context.Context, phaseIDs []string) ([]*domain.Lot, error) {
	if len(phaseIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inPlaceholders(phaseIDs)
	query := `SELECT l.id, l.phase_id, l.name, l.trade_type, l.status, l.start_date, l.end_date,
			l.progress_pct, l.company, l.estimated_budget, l.actual_budget, l.order_index, l.created_at
		FROM lots l
		JOIN phases p ON p.id = l.phase_id
		WHERE l.phase_id IN (` + placeholders + `)
		ORDER BY p.order_index, p.created_at, l.order_index, l.created_at, l.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing lots: %w", err)
	}
	defer rows.Close()

	var lots []*domain.Lot
	for rows.Next() {
		var l domain.Lot
		var status, createdAt string
		var tradeType, startDate, endDate, company sql.NullString
		var estimated, actual sql.NullFloat64
		if err := rows.Scan(
			&l.ID, &l.PhaseID, &l.Name, &tradeType, &status, &startDate, &endDate,
			&l.ProgressPct, &company, &estimated, &actual, &l.OrderIndex, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lot row: %w", err)
		}
		l.Status = domain.LotStatus(status)
		l.TradeType = nullableString(tradeType)
		l.StartDate = nullableString(startDate)
		l.EndDate = nullableString(endDate)
		l.Company = nullableString(company)
		l.EstimatedBudget = nullableFloat(estimated)
		l.ActualBudget = nullableFloat(actual)
		l.CreatedAt = parseCreatedAt(createdAt)
		lots = append(lots, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lots: %w", err)
	}
	return lots, nil
}
