package repository

import (
	"context"

	"github.com/alexanderramin/chantier/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
}

type PhaseRepo interface {
	Create(ctx context.Context, ph *domain.Phase) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
}

type LotRepo interface {
	Create(ctx context.Context, l *domain.Lot) error
	// ListByPhases returns lots of every given phase, ordered by phase order
	// then lot order.
	ListByPhases(ctx context.Context, phaseIDs []string) ([]*domain.Lot, error)
}

type TaskRepo interface {
	CreateLotTask(ctx context.Context, t *domain.Task) error
	CreateProjectTask(ctx context.Context, t *domain.Task) error
	ListByLots(ctx context.Context, lotIDs []string) ([]*domain.Task, error)
	// ListLegacyByProject returns flat tasks attached directly to the project.
	ListLegacyByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
}
