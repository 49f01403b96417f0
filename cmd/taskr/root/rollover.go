package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/z0m0dan/taskr/internal/engine"
	"github.com/z0m0dan/taskr/internal/ui"
)

func newRolloverCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Carry yesterday's unresolved tasks into today",
		Long: `Check yesterday's list for tasks that were still ongoing. Accepting moves a
copy of each into today, due exactly 24 hours later; declining clears
yesterday's list instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return runRollover(ctx, cmd, svc, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept without prompting")

	return cmd
}

func runRollover(ctx context.Context, cmd *cobra.Command, svc *engine.Service, yes bool) error {
	candidates, err := svc.RolloverCandidates(ctx)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No unresolved tasks from yesterday."))
		return nil
	}

	prompt := fmt.Sprintf("You have %d unresolved task(s) from yesterday, move them to today?", len(candidates))
	if yes || confirm(cmd, prompt) {
		n, err := svc.AcceptRollover(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d task(s) moved to today, due 24h later\n",
			ui.Good.Render(ui.IconSunrise+" Rolled over"), n)
		return nil
	}

	if err := svc.DeclineRollover(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Yesterday's tasks cleared."))
	return nil
}
