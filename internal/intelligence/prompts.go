package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/knowledge"
)

// assistantSystemPrompt is the base persona for ordinary questions.
const assistantSystemPrompt = `Tu es l'assistant d'une plateforme de gestion de chantiers de construction et de rénovation.
Tu réponds en français, de façon concrète et concise, aux questions des conducteurs de travaux.
Appuie-toi sur les données du projet quand elles sont fournies et n'invente jamais de données.`

const planningPersona = `Tu es un conducteur de travaux expérimenté et un planificateur de chantier.
Tu ne te contentes pas de résumer : tu analyses, tu détectes ce qui manque et tu proposes de façon proactive
les travaux à ajouter et leur ordonnancement.`

const planningProcess = `MÉTHODE (4 étapes)
1. Analyse l'existant : interventions, tâches, statuts, dates, avancement.
2. Diagnostique : corps d'état manquants pour ce type de projet, tâches en retard, incohérences d'ordonnancement, trous dans le planning.
3. Complète les interventions existantes : ajoute les tâches manquantes dans "suggested_tasks".
4. Propose de nouvelles interventions lorsque le type de projet implique des corps d'état qui n'existent pas encore.
   Si aucune intervention n'existe, propose un ensemble complet de nouvelles interventions couvrant toutes les phases pertinentes pour ce type de projet.`

const planningOutputContract = `FORMAT DE SORTIE
Réponds UNIQUEMENT avec un objet JSON unique, sans markdown ni texte autour, respectant exactement cette structure :
{
  "summary": "synthèse de l'état du chantier et de tes propositions",
  "existing_interventions": [
    {
      "id": "identifiant réel de l'intervention, inchangé",
      "name": "nom de l'intervention",
      "tasks": [
        {"id": "identifiant réel de la tâche, inchangé", "title": "...", "status": "todo|in_progress|done", "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD"}
      ],
      "suggested_tasks": [
        {"title": "nouvelle tâche, SANS identifiant", "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD"}
      ]
    }
  ],
  "suggested_interventions": [
    {
      "name": "nom de la nouvelle intervention",
      "trade_type": "une catégorie de la liste des corps d'état",
      "justification": "pourquoi cette intervention est nécessaire",
      "suggested_tasks": [
        {"title": "...", "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD"}
      ]
    }
  ],
  "warnings": ["retards, risques, dépendances non respectées"],
  "next_week_priorities": ["actions prioritaires de la semaine"]
}

Champs obligatoires : summary, existing_interventions, suggested_interventions, warnings, next_week_priorities (tableaux vides autorisés).
Chaque intervention existante reprend ses tâches réelles avec leurs identifiants réels, sans les modifier.
Les tâches de "suggested_tasks" n'ont jamais d'identifiant : elles seront créées.
Chaque intervention proposée contient entre 2 et 5 tâches suggérées, chacune avec start_date et end_date.`

const planningRules = `RÈGLES IMPÉRATIVES
- Ne réponds JAMAIS en te contentant de reprendre les tâches existantes.
- Propose TOUJOURS au moins une nouveauté : une tâche dans "suggested_tasks" ou une intervention dans "suggested_interventions".
- Les dates doivent respecter l'ordre des phases et les dépendances entre corps d'état ci-dessus.
- Adapte tes propositions au type de projet déclaré.
- N'invente pas d'identifiants et ne modifie pas ceux qui existent.`

const hintInstruction = `Si la question touche à l'avancement, aux retards ou à l'organisation, réponds normalement
puis ajoute au moins une suggestion concrète (tâche à ajouter, intervention manquante ou priorité de la semaine)
fondée sur les données ci-dessus.`

// PromptBuilder renders the planning prompts. Output depends only on its
// inputs, so identical snapshots yield byte-identical prompts.
type PromptBuilder struct {
	table knowledge.Table
}

// NewPromptBuilder uses table for sequencing knowledge.
func NewPromptBuilder(table knowledge.Table) *PromptBuilder {
	return &PromptBuilder{table: table}
}

// DefaultPromptBuilder uses the embedded knowledge table.
func DefaultPromptBuilder() *PromptBuilder {
	return NewPromptBuilder(knowledge.Default())
}

// Full builds the planning prompt that takes over the conversation.
// snapshot is the serialized planning context; weekLabel may be empty.
func (p *PromptBuilder) Full(snapshot, weekLabel string) string {
	week := strings.TrimSpace(weekLabel)
	if week == "" {
		week = "la semaine à venir"
	}

	var b strings.Builder
	b.WriteString(planningPersona)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "OBJECTIF\nPropose le planning du chantier pour %s, en complétant et en réorganisant le travail existant.\n\n", week)
	b.WriteString("DONNÉES DU PROJET\n")
	b.WriteString(snapshot)
	if !strings.HasSuffix(snapshot, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("FIN DES DONNÉES DU PROJET\n\n")
	b.WriteString(planningProcess)
	b.WriteString("\n\n")
	b.WriteString(p.sequencing())
	b.WriteString("\n")
	b.WriteString(planningOutputContract)
	b.WriteString("\n\n")
	b.WriteString(planningRules)
	b.WriteString("\n")
	return b.String()
}

// Light builds the short appendix added to a general prompt when planning
// is only implied.
func (p *PromptBuilder) Light(snapshot string) string {
	var b strings.Builder
	b.WriteString("CONTEXTE DU CHANTIER\n")
	b.WriteString(snapshot)
	if !strings.HasSuffix(snapshot, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("FIN DU CONTEXTE\n\n")
	b.WriteString(hintInstruction)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Métiers reconnus (référentiel %s) : %s\n",
		p.table.Version, strings.Join(p.table.TradeCategories, ", "))
	return b.String()
}

// sequencing renders the knowledge table.
func (p *PromptBuilder) sequencing() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ORDRE DES PHASES D'UN CHANTIER (référentiel %s)\n", p.table.Version)
	for i, ph := range p.table.Phases {
		fmt.Fprintf(&b, "%d. %s : %s\n", i+1, ph.Name, strings.Join(ph.Trades, ", "))
	}
	b.WriteString("Une phase ne commence qu'une fois les travaux des phases précédentes terminés sur la zone concernée.\n\n")
	b.WriteString("CATÉGORIES DE CORPS D'ÉTAT (valeurs autorisées pour trade_type)\n")
	b.WriteString(strings.Join(p.table.TradeCategories, ", "))
	b.WriteString("\n")
	return b.String()
}
