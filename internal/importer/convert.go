package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chantier/internal/domain"
)

// Generated holds domain objects ready for persistence, in insert order.
type Generated struct {
	Project      *domain.Project
	Phases       []*domain.Phase
	Lots         []*domain.Lot
	LotTasks     []*domain.Task
	ProjectTasks []*domain.Task
}

// Convert turns a validated schema into domain objects with fresh ids.
// Call ValidateImportSchema first; Convert assumes refs resolve.
func Convert(schema *ImportSchema, now time.Time) *Generated {
	now = now.UTC()
	project := &domain.Project{
		ID:        uuid.New().String(),
		Name:      schema.Project.Name,
		Type:      schema.Project.Type,
		Status:    schema.Project.Status,
		Address:   schema.Project.Address,
		City:      schema.Project.City,
		Budget:    schema.Project.Budget,
		CreatedAt: now,
	}
	out := &Generated{Project: project}

	phaseIDs := make(map[string]string, len(schema.Phases))
	for _, ph := range schema.Phases {
		id := uuid.New().String()
		phaseIDs[ph.Ref] = id
		out.Phases = append(out.Phases, &domain.Phase{
			ID:         id,
			ProjectID:  project.ID,
			Name:       ph.Name,
			OrderIndex: ph.Order,
			CreatedAt:  now,
		})
	}

	lotIDs := make(map[string]string, len(schema.Lots))
	for _, l := range schema.Lots {
		id := uuid.New().String()
		lotIDs[l.Ref] = id
		status := domain.LotStatus(l.Status)
		if status == "" {
			status = domain.LotPlanned
		}
		out.Lots = append(out.Lots, &domain.Lot{
			ID:              id,
			PhaseID:         phaseIDs[l.PhaseRef],
			Name:            l.Name,
			TradeType:       l.TradeType,
			Status:          status,
			StartDate:       l.StartDate,
			EndDate:         l.EndDate,
			ProgressPct:     l.Progress,
			Company:         l.Company,
			EstimatedBudget: l.EstimatedBudget,
			ActualBudget:    l.ActualBudget,
			OrderIndex:      l.Order,
			CreatedAt:       now,
		})
	}

	for _, t := range schema.Tasks {
		status := domain.TaskStatus(t.Status)
		if status == "" {
			status = domain.TaskTodo
		}
		task := &domain.Task{
			ID:          uuid.New().String(),
			Title:       t.Title,
			Status:      status,
			StartDate:   t.StartDate,
			DueDate:     t.DueDate,
			CompletedAt: t.CompletedAt,
			OrderIndex:  t.Order,
			CreatedAt:   now,
		}
		if t.LotRef == "" {
			task.ProjectID = project.ID
			out.ProjectTasks = append(out.ProjectTasks, task)
			continue
		}
		task.LotID = lotIDs[t.LotRef]
		out.LotTasks = append(out.LotTasks, task)
	}

	return out
}
