package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/chantier/internal/intelligence"
	"github.com/alexanderramin/chantier/internal/planning"
	"github.com/alexanderramin/chantier/internal/service"
)

// App holds the services used by CLI commands.
type App struct {
	Contexts intelligence.ContextBuilder
	Plans    intelligence.PlanService
	Import   service.ImportService
	Limits   planning.Limits

	// Prompts renders prompts printed directly by commands. Nil means the
	// embedded knowledge table.
	Prompts *intelligence.PromptBuilder

	// Assist is nil when the reasoning engine is disabled.
	Assist intelligence.AssistService

	// IsTerminal reports whether stdout is a terminal. Styled output is
	// used only when it returns true.
	IsTerminal func() bool
}

func (a *App) prompts() *intelligence.PromptBuilder {
	if a.Prompts == nil {
		return intelligence.DefaultPromptBuilder()
	}
	return a.Prompts
}

func (a *App) styled() bool {
	return a.IsTerminal != nil && a.IsTerminal()
}

// NewRootCmd creates the top-level "chantier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "chantier",
		Short:         "Planning context and assistant for construction projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newContextCmd(app),
		newPromptCmd(app),
		newPlanCmd(app),
		newAskCmd(app),
		newImportCmd(app),
		newSeedCmd(app),
	)

	return root
}
