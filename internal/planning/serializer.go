package planning

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// NoInterventionMarker replaces the intervention listing of an empty project.
const NoInterventionMarker = "AUCUNE INTERVENTION N'EXISTE ENCORE pour ce projet."

const notSet = "non renseigné"

// Limits caps how much of the hierarchy is rendered. Zero fields fall back
// to DefaultLimits.
type Limits struct {
	MaxLots        int
	MaxTasksPerLot int
	// MaxFieldRunes caps every free-text value (names, titles, addresses).
	MaxFieldRunes int
	// MaxBytes caps the whole snapshot, truncation notice included.
	MaxBytes int
}

// DefaultLimits returns the limits of DefaultConfig.
func DefaultLimits() Limits {
	return DefaultConfig().Limits()
}

// Serialize renders c as a sectioned plain-text block for the reasoning
// engine. Output is bounded by limits and ends with a truncation notice
// whenever something was left out.
func Serialize(c ProjectPlanningContext, limits Limits) string {
	limits = limits.withDefaults()
	w := &snapshotWriter{maxField: limits.MaxFieldRunes}

	w.writeProject(c.Project, c.GeneratedAt)
	w.WriteString("\n")
	w.writeStats(c.Stats)
	w.WriteString("\n")
	w.writeInterventions(c.Interventions, limits)
	return capBytes(w.String(), limits.MaxBytes)
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxLots <= 0 {
		l.MaxLots = d.MaxLots
	}
	if l.MaxTasksPerLot <= 0 {
		l.MaxTasksPerLot = d.MaxTasksPerLot
	}
	if l.MaxFieldRunes <= 0 {
		l.MaxFieldRunes = d.MaxFieldRunes
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = d.MaxBytes
	}
	return l
}

// snapshotWriter renders sections; every free-text value goes through text.
type snapshotWriter struct {
	strings.Builder
	maxField int
}

// text puts s on a single line and clips it to maxField runes, so stored
// values can neither forge section headers nor blow the size budget.
func (w *snapshotWriter) text(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', '\v', '\f', '\u2028', '\u2029':
			return ' '
		}
		return r
	}, s)
	if utf8.RuneCountInString(s) <= w.maxField {
		return s
	}
	r := []rune(s)
	return string(r[:w.maxField-1]) + "…"
}

func (w *snapshotWriter) orNotSet(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return notSet
	}
	return w.text(*s)
}

func (w *snapshotWriter) orNotSetStr(s string) string {
	return w.orNotSet(&s)
}

const byteCapNotice = "[TRONQUÉ] instantané coupé à %d octets.\n"

// capBytes cuts out at the last full line that leaves room for the notice.
func capBytes(out string, maxBytes int) string {
	if len(out) <= maxBytes {
		return out
	}
	notice := fmt.Sprintf(byteCapNotice, maxBytes)
	keep := maxBytes - len(notice)
	if keep <= 0 {
		return notice
	}
	cut := strings.LastIndexByte(out[:keep], '\n')
	return out[:cut+1] + notice
}

func (w *snapshotWriter) writeProject(p ProjectSummary, generatedAt time.Time) {
	w.WriteString("=== PROJET ===\n")
	fmt.Fprintf(w, "ID: %s\n", w.text(p.ID))
	fmt.Fprintf(w, "Nom: %s\n", w.text(p.Name))
	fmt.Fprintf(w, "Type de projet: %s\n", w.orNotSet(p.Type))
	fmt.Fprintf(w, "Statut: %s\n", w.orNotSet(p.Status))
	fmt.Fprintf(w, "Adresse: %s\n", w.orNotSetStr(p.Address))
	fmt.Fprintf(w, "Ville: %s\n", w.orNotSetStr(p.City))
	fmt.Fprintf(w, "Budget total: %s\n", money(p.Budget))
	fmt.Fprintf(w, "Créé le: %s\n", timestamp(p.CreatedAt))
	fmt.Fprintf(w, "Instantané généré le: %s\n", timestamp(generatedAt))
}

func (w *snapshotWriter) writeStats(s Stats) {
	w.WriteString("=== AVANCEMENT GLOBAL ===\n")
	fmt.Fprintf(w, "Interventions: %d\n", s.TotalInterventions)
	fmt.Fprintf(w, "Tâches: %d (terminées: %d, en cours: %d, à faire: %d)\n",
		s.TotalTasks, s.TasksDone, s.TasksInProgress, s.TasksTodo)
	fmt.Fprintf(w, "Tâches en retard: %d\n", s.TasksLate)
	fmt.Fprintf(w, "Avancement global: %d%%\n", s.OverallProgressPercent)
	types := "aucun"
	if len(s.InterventionTypes) > 0 {
		types = w.text(strings.Join(s.InterventionTypes, ", "))
	}
	fmt.Fprintf(w, "Types d'intervention présents: %s\n", types)
}

func (w *snapshotWriter) writeInterventions(lots []LotSnapshot, limits Limits) {
	w.WriteString("=== INTERVENTIONS ===\n")
	if len(lots) == 0 {
		w.WriteString(NoInterventionMarker + "\n")
		return
	}

	shown := lots
	if len(shown) > limits.MaxLots {
		shown = shown[:limits.MaxLots]
	}
	for i, l := range shown {
		w.writeLot(i+1, l, limits.MaxTasksPerLot)
	}
	if hidden := len(lots) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "[TRONQUÉ] %d intervention(s) supplémentaire(s) non affichée(s) (limite %d).\n",
			hidden, limits.MaxLots)
	}
}

func (w *snapshotWriter) writeLot(n int, l LotSnapshot, maxTasks int) {
	fmt.Fprintf(w, "[%d] %s (id: %s)\n", n, w.text(l.Name), w.text(l.ID))
	if l.Synthetic {
		w.WriteString("    Intervention synthétique: tâches rattachées directement au projet\n")
	} else {
		fmt.Fprintf(w, "    Phase: %s (id: %s)\n", w.orNotSetStr(l.PhaseName), w.text(l.PhaseID))
	}
	fmt.Fprintf(w, "    Type: %s | Statut: %s | Dates: %s → %s | Avancement: %d%%\n",
		w.orNotSet(l.TradeType), w.orNotSetStr(l.Status),
		w.orNotSet(l.StartDate), w.orNotSet(l.EndDate), l.ProgressPct)
	fmt.Fprintf(w, "    Entreprise: %s | Budget estimé: %.2f € | Budget réel: %.2f €\n",
		w.orNotSet(l.Company), l.EstimatedBudget, l.ActualBudget)

	if len(l.Tasks) == 0 {
		w.WriteString("    Tâches: aucune\n")
		return
	}
	w.WriteString("    Tâches:\n")
	shown := l.Tasks
	if len(shown) > maxTasks {
		shown = shown[:maxTasks]
	}
	for _, t := range shown {
		w.writeTask(t)
	}
	if hidden := len(l.Tasks) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "      [TRONQUÉ] %d tâche(s) supplémentaire(s) non affichée(s) (limite %d).\n",
			hidden, maxTasks)
	}
}

func (w *snapshotWriter) writeTask(t TaskSnapshot) {
	fmt.Fprintf(w, "      - [%s] %s (id: %s) | début: %s | échéance: %s | terminée le: %s",
		w.text(string(t.Status)), w.text(t.Title), w.text(t.ID),
		w.orNotSet(t.StartDate), w.orNotSet(t.DueDate), w.orNotSet(t.CompletedAt))
	if t.IsLate {
		fmt.Fprintf(w, " | ⚠ EN RETARD de %d jour(s)", t.DelayDays)
	}
	w.WriteString("\n")
}

func money(f *float64) string {
	if f == nil {
		return notSet
	}
	return fmt.Sprintf("%.2f €", *f)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return notSet
	}
	return t.UTC().Format(time.RFC3339)
}
