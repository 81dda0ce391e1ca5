package planning

import (
	"testing"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/stretchr/testify/assert"
)

func task(status domain.TaskStatus, late bool) TaskSnapshot {
	return TaskSnapshot{Status: status, IsLate: late}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)

	assert.Equal(t, 0, s.TotalInterventions)
	assert.Equal(t, 0, s.TotalTasks)
	assert.Equal(t, 0, s.OverallProgressPercent)
	assert.NotNil(t, s.InterventionTypes)
	assert.Empty(t, s.InterventionTypes)
}

func TestComputeStats_LotsWithoutTasks(t *testing.T) {
	s := ComputeStats([]LotSnapshot{{ID: "a", ProgressPct: 80}, {ID: "b"}})

	assert.Equal(t, 2, s.TotalInterventions)
	assert.Equal(t, 0, s.TotalTasks)
	assert.Equal(t, 0, s.OverallProgressPercent)
}

func TestComputeStats_Counters(t *testing.T) {
	lots := []LotSnapshot{
		{
			TradeType: strp("maconnerie"),
			Tasks: []TaskSnapshot{
				task(domain.TaskDone, false),
				task(domain.TaskInProgress, true),
				task(domain.TaskTodo, false),
			},
		},
		{
			TradeType: strp("plomberie"),
			Tasks:     []TaskSnapshot{task(domain.TaskDone, true)},
		},
		{
			TradeType: strp("maconnerie"),
			Tasks:     []TaskSnapshot{task(domain.TaskStatus("blocked"), false)},
		},
		{Synthetic: true, Tasks: []TaskSnapshot{task(domain.TaskDone, false)}},
	}

	s := ComputeStats(lots)
	assert.Equal(t, 4, s.TotalInterventions)
	assert.Equal(t, 6, s.TotalTasks)
	assert.Equal(t, 3, s.TasksDone)
	assert.Equal(t, 1, s.TasksInProgress)
	assert.Equal(t, 2, s.TasksTodo)
	assert.Equal(t, 2, s.TasksLate)
	assert.Equal(t, 50, s.OverallProgressPercent)
	assert.Equal(t, []string{"maconnerie", "plomberie"}, s.InterventionTypes)
}

func TestProgressPercent_Bounds(t *testing.T) {
	for total := 0; total <= 7; total++ {
		for done := 0; done <= total; done++ {
			p := progressPercent(done, total)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
	assert.Equal(t, 0, progressPercent(0, 0))
	assert.Equal(t, 33, progressPercent(1, 3))
	assert.Equal(t, 67, progressPercent(2, 3))
	assert.Equal(t, 100, progressPercent(3, 3))
}
