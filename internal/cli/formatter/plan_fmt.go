package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/intelligence"
)

// FormatPlan renders a planning proposal. New items are marked with "+".
func FormatPlan(p intelligence.PlanProposal) string {
	var b strings.Builder

	b.WriteString(RenderBox("Proposition de planning", p.Summary))
	b.WriteString("\n")

	if len(p.ExistingInterventions) > 0 {
		b.WriteString("\n" + Header("Interventions existantes") + "\n")
		for _, e := range p.ExistingInterventions {
			fmt.Fprintf(&b, "%s %s\n", Bold(e.Name), Dim("("+e.ID+")"))
			for _, t := range e.Tasks {
				fmt.Fprintf(&b, "  · %s %s\n", t.Title, Dim(dateRange(t.StartDate, t.EndDate)))
			}
			for _, t := range e.SuggestedTasks {
				fmt.Fprintf(&b, "  %s %s %s\n", StyleGreen.Render("+"), t.Title, Dim(dateRange(t.StartDate, t.EndDate)))
			}
		}
	}

	if len(p.SuggestedInterventions) > 0 {
		b.WriteString("\n" + Header("Nouvelles interventions") + "\n")
		for _, s := range p.SuggestedInterventions {
			fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("+"), Bold(s.Name), StyleBlue.Render("["+s.TradeType+"]"))
			if s.Justification != "" {
				fmt.Fprintf(&b, "  %s\n", Dim(s.Justification))
			}
			for _, t := range s.SuggestedTasks {
				fmt.Fprintf(&b, "  %s %s %s\n", StyleGreen.Render("+"), t.Title, Dim(dateRange(t.StartDate, t.EndDate)))
			}
		}
	}

	writeList(&b, "Alertes", p.Warnings, StyleYellow.Render("!"))
	writeList(&b, "Priorités de la semaine", p.NextWeekPriorities, "→")
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string, bullet string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + Header(title) + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "%s %s\n", bullet, it)
	}
}

func dateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return fmt.Sprintf("%s → %s", orDashStr(start), orDashStr(end))
}
