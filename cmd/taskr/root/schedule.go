package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/z0m0dan/taskr/internal/timeutil"
	"github.com/z0m0dan/taskr/internal/ui"
)

func newScheduleCmd() *cobra.Command {
	var after string

	cmd := &cobra.Command{
		Use:   "schedule <title> <due> --after <task-id>",
		Short: "Schedule a task that starts once another task resolves",
		Long: `Schedule a dependent task. It stays scheduled until the task it depends on
goes overdue; at that point it activates and its due interval starts counting.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("title and due interval are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if after == "" {
				return errors.New("--after is required")
			}
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			dependsOnID, err := resolveTaskID(ctx, svc, after)
			if err != nil {
				return err
			}
			if _, err := svc.ScheduleTask(ctx, args[0], args[1], dependsOnID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %q, due %s after task %s resolves\n",
				ui.Warn.Render(ui.IconChain+" Scheduled"), args[0], timeutil.Readable(args[1]), shortID(dependsOnID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&after, "after", "a", "", "Id of the task this one depends on")

	return cmd
}
