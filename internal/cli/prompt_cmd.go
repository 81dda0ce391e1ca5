package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chantier/internal/planning"
)

func newPromptCmd(app *App) *cobra.Command {
	var week string
	var light bool

	cmd := &cobra.Command{
		Use:   "prompt <project-id>",
		Short: "Print the planning prompt without calling the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if light {
				c, err := buildContext(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(),
					app.prompts().Light(planning.Serialize(*c, app.Limits)))
				return nil
			}

			prompt, err := app.Plans.Prompt(cmd.Context(), args[0], week)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	addWeekFlag(cmd.Flags(), &week)
	cmd.Flags().BoolVar(&light, "light", false, "Print the short context appendix instead of the full planning prompt")
	cmd.MarkFlagsMutuallyExclusive("week", "light")

	return cmd
}
