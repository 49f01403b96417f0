package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/z0m0dan/taskr/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "taskr",
	Short:         "Personal task reminders with lightweight scheduling",
	Long:          "taskr tracks tasks with relative due times (\"1h\", \"30m\"), sweeps for overdue ones and chains dependent tasks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newScheduleCmd(),
		newDoCmd(),
		newRmCmd(),
		newClearCmd(),
		newListCmd(),
		newRolloverCmd(),
		newWatchCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
