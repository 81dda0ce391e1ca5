package planning

import (
	"testing"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHierarchy() Hierarchy {
	renovation := "renovation"
	masonry := "maconnerie"
	estimated := 12000.0
	return Hierarchy{
		Project: domain.Project{ID: "p1", Name: "Maison Dupont", Type: &renovation, City: "Lyon"},
		Phases:  []*domain.Phase{{ID: "ph1", ProjectID: "p1", Name: "Gros oeuvre"}},
		Lots: []*domain.Lot{
			{ID: "l1", PhaseID: "ph1", Name: "Maçonnerie", TradeType: &masonry, Status: domain.LotInProgress,
				ProgressPct: 90, EstimatedBudget: &estimated},
			{ID: "l2", PhaseID: "ph1", Name: "Charpente", ProgressPct: 15},
		},
		LotTasks: []*domain.Task{
			{ID: "t1", LotID: "l1", Title: "Murs", Status: domain.TaskDone,
				DueDate: strp("2026-10-20"), CompletedAt: strp("2026-10-10T10:00:00Z")},
			{ID: "t2", LotID: "l1", Title: "Dalle", Status: domain.TaskInProgress, DueDate: strp("2026-10-14")},
			{ID: "t3", LotID: "l1", Title: "Enduit", Status: domain.TaskTodo, DueDate: strp("2026-10-22")},
		},
	}
}

func TestBuildContext_LotProgressFromTasks(t *testing.T) {
	c := BuildContext(sampleHierarchy(), fixedNow)

	require.Len(t, c.Interventions, 2)
	masonry := c.Interventions[0]
	assert.Equal(t, "Gros oeuvre", masonry.PhaseName)
	assert.Equal(t, 33, masonry.ProgressPct, "task ratio overrides stored progress")
	assert.Equal(t, 12000.0, masonry.EstimatedBudget)
	assert.Equal(t, 0.0, masonry.ActualBudget)
	require.Len(t, masonry.Tasks, 3)
	assert.True(t, masonry.Tasks[1].IsLate)
	assert.Equal(t, 1, masonry.Tasks[1].DelayDays)

	carpentry := c.Interventions[1]
	assert.Empty(t, carpentry.Tasks)
	assert.Equal(t, 15, carpentry.ProgressPct, "stored progress used without tasks")
}

func TestBuildContext_ScenarioAStats(t *testing.T) {
	c := BuildContext(sampleHierarchy(), fixedNow)

	assert.Equal(t, 3, c.Stats.TotalTasks)
	assert.Equal(t, 1, c.Stats.TasksDone)
	assert.Equal(t, 1, c.Stats.TasksLate)
	assert.Equal(t, 33, c.Stats.OverallProgressPercent)
	assert.Equal(t, []string{"maconnerie"}, c.Stats.InterventionTypes)
	assert.Equal(t, fixedNow, c.GeneratedAt)
}

func TestBuildContext_DeterministicExceptTimestamp(t *testing.T) {
	a := BuildContext(sampleHierarchy(), fixedNow)
	b := BuildContext(sampleHierarchy(), fixedNow.Add(time.Minute))

	diff := cmp.Diff(a, b, cmpopts.IgnoreFields(ProjectPlanningContext{}, "GeneratedAt"))
	assert.Empty(t, diff)
	assert.NotEqual(t, a.GeneratedAt, b.GeneratedAt)
}

func TestBuildContext_DoesNotMutateInput(t *testing.T) {
	h := sampleHierarchy()
	before := sampleHierarchy()

	BuildContext(h, fixedNow)

	assert.Empty(t, cmp.Diff(before, h))
}

func TestBuildContext_LegacyLot(t *testing.T) {
	h := Hierarchy{
		Project: domain.Project{ID: "p1", Name: "Studio"},
		LegacyTasks: []*domain.Task{
			{ID: "a", ProjectID: "p1", Title: "Permis", Status: domain.TaskDone,
				StartDate: strp("2026-03-01"), DueDate: strp("2026-03-10"), CompletedAt: strp("2026-03-09T12:00:00Z")},
			{ID: "b", ProjectID: "p1", Title: "Devis", Status: domain.TaskTodo,
				StartDate: strp("2026-02-15"), DueDate: strp("2026-11-30")},
			{ID: "c", ProjectID: "p1", Title: "Plans", Status: domain.TaskInProgress, StartDate: strp("n/a")},
		},
	}

	c := BuildContext(h, fixedNow)
	require.Len(t, c.Interventions, 1)
	lot := c.Interventions[0]
	assert.Equal(t, LegacyLotID, lot.ID)
	assert.True(t, lot.Synthetic)
	assert.Equal(t, string(domain.LotInProgress), lot.Status)
	require.NotNil(t, lot.StartDate)
	assert.Equal(t, "2026-02-15", *lot.StartDate)
	require.NotNil(t, lot.EndDate)
	assert.Equal(t, "2026-11-30", *lot.EndDate)
	assert.Equal(t, 33, lot.ProgressPct)
	assert.Len(t, lot.Tasks, 3)
}

func TestBuildContext_LegacyLotAllDone(t *testing.T) {
	h := Hierarchy{
		Project: domain.Project{ID: "p1"},
		LegacyTasks: []*domain.Task{
			{ID: "a", Status: domain.TaskDone},
			{ID: "b", Status: domain.TaskDone},
		},
	}

	lot := BuildContext(h, fixedNow).Interventions[0]
	assert.Equal(t, string(domain.LotDone), lot.Status)
	assert.Equal(t, 100, lot.ProgressPct)
	assert.Nil(t, lot.StartDate)
	assert.Nil(t, lot.EndDate)
}

func TestBuildContext_Empty(t *testing.T) {
	c := BuildContext(Hierarchy{Project: domain.Project{ID: "p1"}}, fixedNow)

	assert.NotNil(t, c.Interventions)
	assert.Empty(t, c.Interventions)
	assert.Equal(t, 0, c.Stats.TotalInterventions)
	assert.Equal(t, 0, c.Stats.OverallProgressPercent)
}
