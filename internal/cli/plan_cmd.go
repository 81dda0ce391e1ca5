package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	var week string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan <project-id>",
		Short: "Ask the assistant for a planning proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Plans.Propose(cmd.Context(), args[0], week)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Proposal)
			}
			fmt.Fprint(out, formatter.FormatPlan(res.Proposal))
			return nil
		},
	}

	addWeekFlag(cmd.Flags(), &week)
	addJSONFlag(cmd.Flags(), &asJSON)

	return cmd
}
