package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chantier/internal/service"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demonstration project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.SeedDemo(cmd.Context())
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printImportResult(w io.Writer, res *service.ImportResult) {
	fmt.Fprintf(w, "Projet %q créé (id: %s)\n", res.Project.Name, res.Project.ID)
	fmt.Fprintf(w, "  %d phase(s), %d intervention(s), %d tâche(s), %d tâche(s) hors intervention\n",
		res.PhaseCount, res.LotCount, res.TaskCount, res.LegacyCount)
}
