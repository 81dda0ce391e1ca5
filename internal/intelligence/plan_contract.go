package intelligence

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PlanProposal is the object the reasoning engine must return for a full
// planning prompt. Field names are the wire contract.
type PlanProposal struct {
	Summary                string                  `json:"summary"`
	ExistingInterventions  []ExistingIntervention  `json:"existing_interventions"`
	SuggestedInterventions []SuggestedIntervention `json:"suggested_interventions"`
	Warnings               []string                `json:"warnings"`
	NextWeekPriorities     []string                `json:"next_week_priorities"`
}

// ExistingIntervention echoes a stored lot with the tasks to add to it.
type ExistingIntervention struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Tasks          []PlannedTask   `json:"tasks"`
	SuggestedTasks []SuggestedTask `json:"suggested_tasks"`
}

// PlannedTask is an existing task echoed back with its real id.
type PlannedTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// SuggestedTask is a task to create. ID must stay empty.
type SuggestedTask struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// SuggestedIntervention is a lot to create, with 2 to 5 dated tasks.
type SuggestedIntervention struct {
	Name           string          `json:"name"`
	TradeType      string          `json:"trade_type"`
	Justification  string          `json:"justification"`
	SuggestedTasks []SuggestedTask `json:"suggested_tasks"`
}

// SuggestionCount returns the number of new tasks and interventions.
func (p PlanProposal) SuggestionCount() int {
	n := len(p.SuggestedInterventions)
	for _, e := range p.ExistingInterventions {
		n += len(e.SuggestedTasks)
	}
	return n
}

// ValidatePlanShape checks the structural contract only: required fields,
// ids where they belong, task counts and date formats. It does not judge
// whether the schedule is sound.
func ValidatePlanShape(p PlanProposal) error {
	if strings.TrimSpace(p.Summary) == "" {
		return fmt.Errorf("summary is required")
	}
	if p.SuggestionCount() == 0 {
		return fmt.Errorf("at least one suggested task or intervention is required")
	}
	for i, e := range p.ExistingInterventions {
		if e.ID == "" {
			return fmt.Errorf("existing_interventions[%d]: id is required", i)
		}
		for j, t := range e.Tasks {
			if t.ID == "" {
				return fmt.Errorf("existing_interventions[%d].tasks[%d]: id is required", i, j)
			}
		}
		if err := validateSuggestedTasks(fmt.Sprintf("existing_interventions[%d]", i), e.SuggestedTasks, false); err != nil {
			return err
		}
	}
	for i, s := range p.SuggestedInterventions {
		where := fmt.Sprintf("suggested_interventions[%d]", i)
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%s: name is required", where)
		}
		if strings.TrimSpace(s.TradeType) == "" {
			return fmt.Errorf("%s: trade_type is required", where)
		}
		if n := len(s.SuggestedTasks); n < 2 || n > 5 {
			return fmt.Errorf("%s: expected 2 to 5 suggested_tasks, got %d", where, n)
		}
		if err := validateSuggestedTasks(where, s.SuggestedTasks, true); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePlan runs ValidatePlanShape and then requires every suggested
// intervention to use a trade category of the builder's table.
func (p *PromptBuilder) ValidatePlan(plan PlanProposal) error {
	if err := ValidatePlanShape(plan); err != nil {
		return err
	}
	for i, s := range plan.SuggestedInterventions {
		trade := strings.ToLower(strings.TrimSpace(s.TradeType))
		if !slices.Contains(p.table.TradeCategories, trade) {
			return fmt.Errorf("suggested_interventions[%d]: unknown trade_type %q", i, s.TradeType)
		}
	}
	return nil
}

// SequencingWarnings lists suggested interventions that start before an
// intervention whose trade belongs to an earlier phase.
func (p *PromptBuilder) SequencingWarnings(plan PlanProposal) []string {
	var warnings []string
	for _, early := range plan.SuggestedInterventions {
		for _, late := range plan.SuggestedInterventions {
			if !p.table.Precedes(early.TradeType, late.TradeType) {
				continue
			}
			es, ls := firstStart(early.SuggestedTasks), firstStart(late.SuggestedTasks)
			if es == "" || ls == "" || ls >= es {
				continue
			}
			warnings = append(warnings, fmt.Sprintf(
				"Ordre des phases : %s (%s) débute le %s, avant %s (%s, phase %d) prévu le %s",
				late.Name, late.TradeType, ls, early.Name, early.TradeType, p.table.PhaseIndex(early.TradeType)+1, es))
		}
	}
	return warnings
}

// firstStart returns the earliest YYYY-MM-DD start date of tasks, or "".
func firstStart(tasks []SuggestedTask) string {
	var first string
	for _, t := range tasks {
		if t.StartDate != "" && (first == "" || t.StartDate < first) {
			first = t.StartDate
		}
	}
	return first
}

func validateSuggestedTasks(where string, tasks []SuggestedTask, datesRequired bool) error {
	for j, t := range tasks {
		at := fmt.Sprintf("%s.suggested_tasks[%d]", where, j)
		if t.ID != "" {
			return fmt.Errorf("%s: new tasks must not carry an id", at)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%s: title is required", at)
		}
		if datesRequired && (t.StartDate == "" || t.EndDate == "") {
			return fmt.Errorf("%s: start_date and end_date are required", at)
		}
		for _, d := range []string{t.StartDate, t.EndDate} {
			if d == "" {
				continue
			}
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return fmt.Errorf("%s: date %q is not YYYY-MM-DD", at, d)
			}
		}
	}
	return nil
}
