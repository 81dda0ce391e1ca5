package planning

import (
	"math"

	"github.com/alexanderramin/chantier/internal/domain"
)

// Stats are project-wide counters over every task in the snapshot,
// including the synthetic lot.
type Stats struct {
	TotalInterventions     int `json:"total_interventions"`
	TotalTasks             int `json:"total_tasks"`
	TasksDone              int `json:"tasks_done"`
	TasksInProgress        int `json:"tasks_in_progress"`
	TasksTodo              int `json:"tasks_todo"`
	TasksLate              int `json:"tasks_late"`
	OverallProgressPercent int `json:"overall_progress_percent"`
	// InterventionTypes lists distinct trade labels in order of first appearance.
	InterventionTypes []string `json:"intervention_types"`
}

// progressPercent returns round(done/total*100), 0 when total is 0.
func progressPercent(done, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(done) / float64(total) * 100))
	return clampPercent(pct)
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// ComputeStats reduces interventions into Stats. Tasks with a status outside
// the three-state lifecycle count toward the total and as todo.
func ComputeStats(lots []LotSnapshot) Stats {
	s := Stats{
		TotalInterventions: len(lots),
		InterventionTypes:  []string{},
	}
	seenTypes := make(map[string]bool)

	for _, l := range lots {
		if label := domain.StrOrEmpty(l.TradeType); label != "" && !seenTypes[label] {
			seenTypes[label] = true
			s.InterventionTypes = append(s.InterventionTypes, label)
		}
		for _, t := range l.Tasks {
			s.TotalTasks++
			switch t.Status {
			case domain.TaskDone:
				s.TasksDone++
			case domain.TaskInProgress:
				s.TasksInProgress++
			default:
				s.TasksTodo++
			}
			if t.IsLate {
				s.TasksLate++
			}
		}
	}

	s.OverallProgressPercent = progressPercent(s.TasksDone, s.TotalTasks)
	return s
}
