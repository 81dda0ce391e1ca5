package planning

import (
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
)

// LegacyLotID is the reserved id of the synthetic lot holding flat
// project tasks.
const LegacyLotID = "project-tasks"

// LegacyLotName is the display name of the synthetic lot.
const LegacyLotName = "Tâches générales du projet"

// ProjectSummary is the project header of a planning context.
type ProjectSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      *string   `json:"type,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Budget    *float64  `json:"budget,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskSnapshot is a task with its lateness resolved at build time.
type TaskSnapshot struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Status      domain.TaskStatus `json:"status"`
	StartDate   *string           `json:"start_date,omitempty"`
	DueDate     *string           `json:"due_date,omitempty"`
	CompletedAt *string           `json:"completed_at,omitempty"`
	IsLate      bool              `json:"is_late"`
	DelayDays   int               `json:"delay_days"`
}

// LotSnapshot is one intervention with its ordered tasks. Synthetic marks
// the lot that groups tasks attached directly to the project.
type LotSnapshot struct {
	ID              string         `json:"id"`
	PhaseID         string         `json:"phase_id"`
	PhaseName       string         `json:"phase_name"`
	Name            string         `json:"name"`
	TradeType       *string        `json:"trade_type,omitempty"`
	Status          string         `json:"status"`
	StartDate       *string        `json:"start_date,omitempty"`
	EndDate         *string        `json:"end_date,omitempty"`
	ProgressPct     int            `json:"progress_pct"`
	Company         *string        `json:"company,omitempty"`
	EstimatedBudget float64        `json:"estimated_budget"`
	ActualBudget    float64        `json:"actual_budget"`
	Synthetic       bool           `json:"synthetic"`
	Tasks           []TaskSnapshot `json:"tasks"`
}

// ProjectPlanningContext is the point-in-time planning view of a project.
// Two contexts built from the same store state differ only in GeneratedAt.
type ProjectPlanningContext struct {
	Project       ProjectSummary `json:"project"`
	Interventions []LotSnapshot  `json:"interventions"`
	Stats         Stats          `json:"stats"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// Hierarchy is the raw store state a context is built from.
type Hierarchy struct {
	Project     domain.Project
	Phases      []*domain.Phase
	Lots        []*domain.Lot
	LotTasks    []*domain.Task
	LegacyTasks []*domain.Task
}

// BuildContext derives a ProjectPlanningContext from h. now is both the
// lateness reference for open tasks and the snapshot timestamp.
func BuildContext(h Hierarchy, now time.Time) ProjectPlanningContext {
	phaseNames := make(map[string]string, len(h.Phases))
	for _, ph := range h.Phases {
		phaseNames[ph.ID] = ph.Name
	}
	tasksByLot := groupBy(h.LotTasks, func(t *domain.Task) string { return t.LotID })

	lots := make([]LotSnapshot, 0, len(h.Lots)+1)
	for _, l := range h.Lots {
		lots = append(lots, lotSnapshot(l, phaseNames[l.PhaseID], deriveTasks(tasksByLot[l.ID], now)))
	}
	if len(h.LegacyTasks) > 0 {
		lots = append(lots, legacyLot(deriveTasks(h.LegacyTasks, now), h.LegacyTasks))
	}

	return ProjectPlanningContext{
		Project:       summarize(h.Project),
		Interventions: lots,
		Stats:         ComputeStats(lots),
		GeneratedAt:   now,
	}
}

func groupBy[T any](items []T, key func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}

func summarize(p domain.Project) ProjectSummary {
	return ProjectSummary{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Status:    p.Status,
		Address:   p.Address,
		City:      p.City,
		Budget:    p.Budget,
		CreatedAt: p.CreatedAt,
	}
}

func deriveTasks(tasks []*domain.Task, now time.Time) []TaskSnapshot {
	out := make([]TaskSnapshot, 0, len(tasks))
	for _, t := range tasks {
		late := ComputeLateness(t.DueDate, t.CompletedAt, t.Status, now)
		out = append(out, TaskSnapshot{
			ID:          t.ID,
			Title:       t.Title,
			Status:      t.Status,
			StartDate:   t.StartDate,
			DueDate:     t.DueDate,
			CompletedAt: t.CompletedAt,
			IsLate:      late.IsLate,
			DelayDays:   late.DelayDays,
		})
	}
	return out
}

func countDone(tasks []TaskSnapshot) int {
	n := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			n++
		}
	}
	return n
}

// lotProgress prefers the task ratio; the stored value only stands in for
// lots without tasks.
func lotProgress(tasks []TaskSnapshot, stored int) int {
	if len(tasks) == 0 {
		return clampPercent(stored)
	}
	return progressPercent(countDone(tasks), len(tasks))
}

func lotSnapshot(l *domain.Lot, phaseName string, tasks []TaskSnapshot) LotSnapshot {
	return LotSnapshot{
		ID:              l.ID,
		PhaseID:         l.PhaseID,
		PhaseName:       phaseName,
		Name:            l.Name,
		TradeType:       l.TradeType,
		Status:          string(l.Status),
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		ProgressPct:     lotProgress(tasks, l.ProgressPct),
		Company:         l.Company,
		EstimatedBudget: domain.Float64FromPtrWithDefault(0, l.EstimatedBudget),
		ActualBudget:    domain.Float64FromPtrWithDefault(0, l.ActualBudget),
		Tasks:           tasks,
	}
}

func legacyLot(tasks []TaskSnapshot, raw []*domain.Task) LotSnapshot {
	status := domain.LotInProgress
	if countDone(tasks) == len(tasks) {
		status = domain.LotDone
	}
	start, end := legacyRange(raw)
	return LotSnapshot{
		ID:          LegacyLotID,
		Name:        LegacyLotName,
		Status:      string(status),
		StartDate:   start,
		EndDate:     end,
		ProgressPct: lotProgress(tasks, 0),
		Synthetic:   true,
		Tasks:       tasks,
	}
}

// legacyRange returns the earliest start and latest due date of tasks,
// formatted as dates. Unparsable values are ignored.
func legacyRange(tasks []*domain.Task) (*string, *string) {
	var minStart, maxEnd time.Time
	for _, t := range tasks {
		if t.StartDate != nil {
			if d, ok := parseInstant(*t.StartDate, time.UTC); ok && (minStart.IsZero() || d.Before(minStart)) {
				minStart = d
			}
		}
		if t.DueDate != nil {
			if d, ok := parseInstant(*t.DueDate, time.UTC); ok && d.After(maxEnd) {
				maxEnd = d
			}
		}
	}
	return formatDay(minStart), formatDay(maxEnd)
}

func formatDay(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
