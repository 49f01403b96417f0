package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/z0m0dan/taskr/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the live task board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, cfg.Interval(), cmd.OutOrStdout())
		},
	}

	return cmd
}
