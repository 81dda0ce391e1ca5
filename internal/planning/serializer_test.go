package planning

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSerialize_IncludesEveryField(t *testing.T) {
	h := sampleHierarchy()
	budget := 85000.0
	status := "en_cours"
	company := "BTP Rhône"
	actual := 4000.0
	h.Project.Budget = &budget
	h.Project.Status = &status
	h.Project.Address = "12 rue des Lilas"
	h.Lots[0].Company = &company
	h.Lots[0].ActualBudget = &actual
	h.Lots[0].StartDate = strp("2026-09-01")
	h.Lots[0].EndDate = strp("2026-11-15")
	h.LotTasks[2].StartDate = strp("2026-10-16")

	out := Serialize(BuildContext(h, fixedNow), DefaultLimits())

	for _, want := range []string{
		"=== PROJET ===",
		"ID: p1",
		"Nom: Maison Dupont",
		"Type de projet: renovation",
		"Statut: en_cours",
		"Adresse: 12 rue des Lilas",
		"Ville: Lyon",
		"Budget total: 85000.00 €",
		"Instantané généré le: 2026-10-15T12:00:00Z",
		"=== AVANCEMENT GLOBAL ===",
		"Interventions: 2",
		"Tâches: 3 (terminées: 1, en cours: 1, à faire: 1)",
		"Tâches en retard: 1",
		"Avancement global: 33%",
		"Types d'intervention présents: maconnerie",
		"=== INTERVENTIONS ===",
		"[1] Maçonnerie (id: l1)",
		"Phase: Gros oeuvre (id: ph1)",
		"Type: maconnerie | Statut: in_progress | Dates: 2026-09-01 → 2026-11-15 | Avancement: 33%",
		"Entreprise: BTP Rhône | Budget estimé: 12000.00 € | Budget réel: 4000.00 €",
		"- [done] Murs (id: t1) | début: non renseigné | échéance: 2026-10-20 | terminée le: 2026-10-10T10:00:00Z",
		"- [in_progress] Dalle (id: t2)",
		"⚠ EN RETARD de 1 jour(s)",
		"- [todo] Enduit (id: t3) | début: 2026-10-16",
		"[2] Charpente (id: l2)",
		"Tâches: aucune",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, strings.Count(out, "EN RETARD"))
	assert.NotContains(t, out, "TRONQUÉ")
}

func TestSerialize_EmptyProjectMarker(t *testing.T) {
	c := BuildContext(Hierarchy{Project: domain.Project{ID: "p1", Name: "Terrain"}}, fixedNow)

	out := Serialize(c, DefaultLimits())
	assert.Contains(t, out, "=== INTERVENTIONS ===\n"+NoInterventionMarker)
	assert.Contains(t, out, "Types d'intervention présents: aucun")
	assert.Contains(t, out, "Type de projet: non renseigné")
	assert.Contains(t, out, "Budget total: non renseigné")
}

func TestSerialize_SyntheticLot(t *testing.T) {
	h := Hierarchy{
		Project:     domain.Project{ID: "p1"},
		LegacyTasks: []*domain.Task{{ID: "a", Title: "Permis", Status: domain.TaskTodo}},
	}

	out := Serialize(BuildContext(h, fixedNow), DefaultLimits())
	assert.Contains(t, out, "(id: "+LegacyLotID+")")
	assert.Contains(t, out, "Intervention synthétique")
}

func TestSerialize_Truncation(t *testing.T) {
	var lots []LotSnapshot
	for i := 0; i < 5; i++ {
		l := LotSnapshot{ID: fmt.Sprintf("l%d", i), Name: fmt.Sprintf("Lot %d", i)}
		for j := 0; j < 4; j++ {
			l.Tasks = append(l.Tasks, TaskSnapshot{ID: fmt.Sprintf("t%d-%d", i, j), Title: "x", Status: domain.TaskTodo})
		}
		lots = append(lots, l)
	}
	c := ProjectPlanningContext{Interventions: lots, Stats: ComputeStats(lots)}

	out := Serialize(c, Limits{MaxLots: 2, MaxTasksPerLot: 3})
	assert.Contains(t, out, "[2] Lot 1")
	assert.NotContains(t, out, "Lot 2 (")
	assert.Contains(t, out, "[TRONQUÉ] 3 intervention(s) supplémentaire(s) non affichée(s) (limite 2).")
	assert.Equal(t, 2, strings.Count(out, "[TRONQUÉ] 1 tâche(s) supplémentaire(s)"))
	assert.NotContains(t, out, "t0-3")
	assert.Contains(t, out, "Interventions: 5", "stats still cover the whole project")
}

func TestSerialize_ZeroLimitsUseDefaults(t *testing.T) {
	c := BuildContext(sampleHierarchy(), fixedNow)

	assert.Equal(t, Serialize(c, DefaultLimits()), Serialize(c, Limits{}))
}

func TestSerialize_Deterministic(t *testing.T) {
	c := BuildContext(sampleHierarchy(), fixedNow)

	assert.Equal(t, Serialize(c, DefaultLimits()), Serialize(c, DefaultLimits()))
}

func TestSerialize_FreeTextCannotForgeSections(t *testing.T) {
	forged := "Murs\n=== INTERVENTIONS ===\n" + NoInterventionMarker + "\r\n" + strings.Repeat("A", 1<<20)
	lots := []LotSnapshot{{
		ID:    "l1",
		Name:  "Gros oeuvre\n=== PROJET ===",
		Tasks: []TaskSnapshot{{ID: "t1", Title: forged, Status: domain.TaskTodo}},
	}}
	c := ProjectPlanningContext{
		Project:       ProjectSummary{ID: "p1", Name: "Maison\nDupont"},
		Interventions: lots,
		Stats:         ComputeStats(lots),
	}

	out := Serialize(c, Limits{MaxLots: 1, MaxTasksPerLot: 1})

	var headers, markers int
	for _, line := range strings.Split(out, "\n") {
		switch {
		case line == "=== INTERVENTIONS ===", line == "=== PROJET ===":
			headers++
		case strings.HasPrefix(line, NoInterventionMarker):
			markers++
		}
	}
	assert.Equal(t, 2, headers)
	assert.Zero(t, markers)
	assert.Contains(t, out, "Nom: Maison Dupont\n")
	assert.Contains(t, out, "- [todo] Murs === INTERVENTIONS === ")
	assert.Less(t, len(out), 4096)
}

func TestSerialize_ClipsFieldsOnRuneBoundary(t *testing.T) {
	c := ProjectPlanningContext{Project: ProjectSummary{ID: "p1", Name: "Rénovation"}}

	out := Serialize(c, Limits{MaxFieldRunes: 5})
	assert.Contains(t, out, "Nom: Réno…\n")
}

func TestSerialize_ByteBudget(t *testing.T) {
	var lots []LotSnapshot
	for i := 0; i < 20; i++ {
		lots = append(lots, LotSnapshot{ID: fmt.Sprintf("l%d", i), Name: fmt.Sprintf("Lot %d", i)})
	}
	c := ProjectPlanningContext{Project: ProjectSummary{ID: "p1"}, Interventions: lots, Stats: ComputeStats(lots)}

	out := Serialize(c, Limits{MaxBytes: 900})
	assert.LessOrEqual(t, len(out), 900)
	assert.True(t, strings.HasPrefix(out, "=== PROJET ===\n"))
	assert.True(t, strings.HasSuffix(out, "\n[TRONQUÉ] instantané coupé à 900 octets.\n"))
	assert.NotContains(t, out, "Lot 19")

	full := Serialize(c, DefaultLimits())
	assert.NotContains(t, full, "instantané coupé")
	assert.Contains(t, full, "[20] Lot 19")
}

func TestLoadConfig_SnapshotBounds(t *testing.T) {
	t.Setenv("CHANTIER_MAX_FIELD_CHARS", "80")
	t.Setenv("CHANTIER_MAX_SNAPSHOT_BYTES", "nope")

	l := LoadConfig().Limits()
	assert.Equal(t, 80, l.MaxFieldRunes)
	assert.Equal(t, DefaultConfig().MaxBytes, l.MaxBytes)
}
