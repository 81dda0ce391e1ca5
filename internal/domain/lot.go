package domain

import "time"

// Lot is an intervention: one trade's scope of work inside a phase.
// Dates are kept as the raw strings the store returns.
type Lot struct {
	ID              string
	PhaseID         string
	Name            string
	TradeType       *string
	Status          LotStatus
	StartDate       *string
	EndDate         *string
	ProgressPct     int
	Company         *string
	EstimatedBudget *float64
	ActualBudget    *float64
	OrderIndex      int
	CreatedAt       time.Time
}

// Task is a unit of tracked work. LotID is empty for legacy tasks attached
// directly to a project.
type Task struct {
	ID          string
	LotID       string
	ProjectID   string
	Title       string
	Status      TaskStatus
	StartDate   *string
	DueDate     *string
	CompletedAt *string
	OrderIndex  int
	CreatedAt   time.Time
}
