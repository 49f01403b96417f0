package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/z0m0dan/taskr/internal/timeutil"
	"github.com/z0m0dan/taskr/internal/ui"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title> <due>",
		Short: "Add a task due after a relative interval (e.g. 30m, 2h)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("title and due interval are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.AddTask(ctx, args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %q, will remind you in %s\n",
				ui.Good.Render(ui.IconPlus+" Added"), args[0], timeutil.Readable(args[1]))
			return nil
		},
	}

	return cmd
}
