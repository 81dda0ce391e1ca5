package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/planning"
)

const progressWidth = 20

// FormatContext renders a planning context for the terminal.
func FormatContext(c *planning.ProjectPlanningContext) string {
	var b strings.Builder

	p := c.Project
	var head strings.Builder
	fmt.Fprintf(&head, "%s  %s\n", Bold(p.Name), Dim(p.ID))
	fmt.Fprintf(&head, "Type: %s  Statut: %s  Ville: %s\n", OrDash(p.Type), OrDash(p.Status), orDashStr(p.City))
	fmt.Fprintf(&head, "Avancement %s\n", RenderProgress(c.Stats.OverallProgressPercent, progressWidth))
	fmt.Fprintf(&head, "%d intervention(s)  %d tâche(s): %s  %s  %s",
		c.Stats.TotalInterventions, c.Stats.TotalTasks,
		StyleGreen.Render(fmt.Sprintf("%d faites", c.Stats.TasksDone)),
		StyleYellow.Render(fmt.Sprintf("%d en cours", c.Stats.TasksInProgress)),
		Dim(fmt.Sprintf("%d à faire", c.Stats.TasksTodo)))
	if c.Stats.TasksLate > 0 {
		head.WriteString("  " + StyleRed.Render(fmt.Sprintf("%d en retard", c.Stats.TasksLate)))
	}
	b.WriteString(RenderBox("Projet", head.String()))
	b.WriteString("\n\n")

	b.WriteString(Header("Interventions"))
	b.WriteString("\n")
	if len(c.Interventions) == 0 {
		b.WriteString(Dim("Aucune intervention pour ce projet."))
		b.WriteString("\n")
		return b.String()
	}
	for _, l := range c.Interventions {
		writeLot(&b, l)
	}
	return b.String()
}

func writeLot(b *strings.Builder, l planning.LotSnapshot) {
	phase := l.PhaseName
	if l.Synthetic {
		phase = "hors phase"
	}
	fmt.Fprintf(b, "\n%s  %s  %s\n", Bold(l.Name), Dim(orDashStr(phase)), RenderProgress(l.ProgressPct, 10))
	fmt.Fprintf(b, "  %s  %s → %s  %s  budget %s / %s\n",
		StyleBlue.Render(OrDash(l.TradeType)), OrDash(l.StartDate), OrDash(l.EndDate),
		OrDash(l.Company), Money(l.EstimatedBudget), Money(l.ActualBudget))
	for _, t := range l.Tasks {
		line := fmt.Sprintf("  %s  %s", TaskStatusIcon(t.Status), Truncate(t.Title, 48))
		if t.DueDate != nil {
			line += "  " + Dim("échéance "+*t.DueDate)
		}
		if badge := LateBadge(t.IsLate, t.DelayDays); badge != "" {
			line += "  " + badge
		}
		b.WriteString(line + "\n")
	}
}

func orDashStr(s string) string {
	return OrDash(&s)
}
