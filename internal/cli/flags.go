package cli

import (
	"github.com/spf13/pflag"
)

func addWeekFlag(fs *pflag.FlagSet, week *string) {
	fs.StringVarP(week, "week", "w", "", `Week the plan targets, e.g. "semaine 43" (default: la semaine à venir)`)
}

func addJSONFlag(fs *pflag.FlagSet, asJSON *bool) {
	fs.BoolVar(asJSON, "json", false, "Print machine-readable JSON")
}

func addLimitFlags(fs *pflag.FlagSet, maxLots, maxTasks *int) {
	fs.IntVar(maxLots, "max-lots", 0, "Interventions rendered in the snapshot (0 uses the configured limit)")
	fs.IntVar(maxTasks, "max-tasks", 0, "Tasks rendered per intervention (0 uses the configured limit)")
}
