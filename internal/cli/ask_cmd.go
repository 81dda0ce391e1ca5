package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/intelligence"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <project-id> <message...>",
		Short: "Ask the assistant a question about a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assist == nil {
				return intelligence.ErrLLMDisabled
			}
			reply, err := app.Assist.Reply(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if reply.Plan != nil {
				fmt.Fprint(out, formatter.FormatPlan(*reply.Plan))
				return nil
			}
			fmt.Fprintln(out, strings.TrimSpace(reply.Text))
			return nil
		},
	}
}
