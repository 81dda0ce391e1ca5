package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/planning"
)

func newContextCmd(app *App) *cobra.Command {
	var raw, asJSON bool
	var maxLots, maxTasks int

	cmd := &cobra.Command{
		Use:   "context <project-id>",
		Short: "Show the planning snapshot of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContext(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			case raw || !app.styled():
				fmt.Fprint(out, planning.Serialize(*c, app.limits(maxLots, maxTasks)))
			default:
				fmt.Fprint(out, formatter.FormatContext(c))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the plain-text snapshot sent to the assistant")
	addJSONFlag(cmd.Flags(), &asJSON)
	addLimitFlags(cmd.Flags(), &maxLots, &maxTasks)

	return cmd
}

func buildContext(ctx context.Context, app *App, projectID string) (*planning.ProjectPlanningContext, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := app.Contexts.Build(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}
	return c, nil
}

func (a *App) limits(maxLots, maxTasks int) planning.Limits {
	l := a.Limits
	if maxLots > 0 {
		l.MaxLots = maxLots
	}
	if maxTasks > 0 {
		l.MaxTasksPerLot = maxTasks
	}
	return l
}
