package testutil

import (
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/google/uuid"
)

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }

// Project options
type ProjectOption func(*domain.Project)

func WithProjectType(t string) ProjectOption {
	return func(p *domain.Project) {
		p.Type = &t
	}
}

func WithBudget(b float64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = &b
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   "12 rue des Lilas",
		City:      "Lyon",
		CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestPhase(projectID, name string, order int) *domain.Phase {
	return &domain.Phase{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Name:       name,
		OrderIndex: order,
		CreatedAt:  time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
}

// Lot options
type LotOption func(*domain.Lot)

func WithTradeType(t string) LotOption {
	return func(l *domain.Lot) {
		l.TradeType = &t
	}
}

func WithLotStatus(s domain.LotStatus) LotOption {
	return func(l *domain.Lot) {
		l.Status = s
	}
}

func WithLotDates(start, end string) LotOption {
	return func(l *domain.Lot) {
		l.StartDate = &start
		l.EndDate = &end
	}
}

func WithProgress(pct int) LotOption {
	return func(l *domain.Lot) {
		l.ProgressPct = pct
	}
}

func WithCompany(c string) LotOption {
	return func(l *domain.Lot) {
		l.Company = &c
	}
}

func WithLotOrder(order int) LotOption {
	return func(l *domain.Lot) {
		l.OrderIndex = order
	}
}

func NewTestLot(phaseID, name string, opts ...LotOption) *domain.Lot {
	l := &domain.Lot{
		ID:        uuid.New().String(),
		PhaseID:   phaseID,
		Name:      name,
		Status:    domain.LotPlanned,
		CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Task options
type TaskOption func(*domain.Task)

func WithDueDate(d string) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithStartDate(d string) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &d
	}
}

func WithCompletedAt(ts string) TaskOption {
	return func(t *domain.Task) {
		t.CompletedAt = &ts
	}
}

func WithTaskOrder(order int) TaskOption {
	return func(t *domain.Task) {
		t.OrderIndex = order
	}
}

// NewTestLotTask builds a task attached to a lot.
func NewTestLotTask(lotID, title string, status domain.TaskStatus, opts ...TaskOption) *domain.Task {
	t := newTestTask(title, status, opts...)
	t.LotID = lotID
	return t
}

// NewTestProjectTask builds a legacy flat task attached to a project.
func NewTestProjectTask(projectID, title string, status domain.TaskStatus, opts ...TaskOption) *domain.Task {
	t := newTestTask(title, status, opts...)
	t.ProjectID = projectID
	return t
}

func newTestTask(title string, status domain.TaskStatus, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    status,
		CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
