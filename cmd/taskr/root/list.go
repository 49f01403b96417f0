package root

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/z0m0dan/taskr/internal/engine"
	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/ui"
)

func newListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var filter []storage.Status
			if status != "" {
				st := storage.Status(status)
				if !st.IsValid() {
					return fmt.Errorf("unknown status %q (ongoing|done|overdue|scheduled)", status)
				}
				filter = append(filter, st)
			}

			tasks, err := svc.TaskList(ctx, filter...)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no tasks today)"))
				return nil
			}
			engine.SortByCreation(tasks)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{
				text.Bold.Sprint("ID"),
				text.Bold.Sprint("Task"),
				text.Bold.Sprint("Status"),
				text.Bold.Sprint("Due"),
				text.Bold.Sprint("Depends on"),
			})
			for _, task := range tasks {
				dependsOn := ""
				if task.DependsOn != nil {
					dependsOn = fmt.Sprintf("%s (%s)", task.DependsOn.Name, shortID(task.DependsOn.ID))
				}
				t.AppendRow(table.Row{
					shortID(task.ID),
					task.Name,
					statusCell(task.Status),
					task.DisplayTime,
					dependsOn,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (ongoing|done|overdue|scheduled)")

	return cmd
}

func statusCell(st storage.Status) string {
	switch st {
	case storage.StatusOngoing:
		return text.FgHiBlue.Sprint(st)
	case storage.StatusOverdue:
		return text.FgHiRed.Sprint(st)
	case storage.StatusScheduled:
		return text.FgHiYellow.Sprint(st)
	case storage.StatusDone:
		return text.FgHiGreen.Sprint(st)
	default:
		return string(st)
	}
}
