package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/chantier/internal/intelligence"
)

func TestFormatPlan(t *testing.T) {
	p := intelligence.PlanProposal{
		Summary: "Dalle en retard.",
		ExistingInterventions: []intelligence.ExistingIntervention{{
			ID:             "l1",
			Name:           "Maçonnerie",
			Tasks:          []intelligence.PlannedTask{{ID: "t1", Title: "Dalle"}},
			SuggestedTasks: []intelligence.SuggestedTask{{Title: "Chaînage", StartDate: "2026-10-19", EndDate: "2026-10-21"}},
		}},
		SuggestedInterventions: []intelligence.SuggestedIntervention{{
			Name: "Couverture", TradeType: "couverture", Justification: "Mise hors d'eau",
			SuggestedTasks: []intelligence.SuggestedTask{{Title: "Liteaux"}, {Title: "Tuiles"}},
		}},
		Warnings:           []string{"Dalle en retard"},
		NextWeekPriorities: []string{"Couler la dalle"},
	}

	out := FormatPlan(p)
	assert.Contains(t, out, "PROPOSITION DE PLANNING")
	assert.Contains(t, out, "Dalle en retard.")
	assert.Contains(t, out, "Chaînage 2026-10-19 → 2026-10-21")
	assert.Contains(t, out, "[couverture]")
	assert.Contains(t, out, "Mise hors d'eau")
	assert.Contains(t, out, "ALERTES")
	assert.Contains(t, out, "→ Couler la dalle")
}

func TestFormatPlan_OmitsEmptySections(t *testing.T) {
	out := FormatPlan(intelligence.PlanProposal{Summary: "Rien"})
	assert.NotContains(t, out, "INTERVENTIONS EXISTANTES")
	assert.NotContains(t, out, "ALERTES")
}
