package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/z0m0dan/taskr/internal/config"
	"github.com/z0m0dan/taskr/internal/engine"
	"github.com/z0m0dan/taskr/internal/scheduler"
	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/ui"
)

func newWatchCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the reminder daemon (periodic overdue sweep)",
		Long: `Run taskr in the foreground: offer to roll over yesterday's unresolved
tasks, then sweep for overdue tasks on the configured interval until
interrupted. Tasks that go overdue are announced as they happen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			notifier := engine.NotifierFunc(func(tasks []storage.Task) {
				for _, t := range tasks {
					if t.Status == storage.StatusOverdue {
						fmt.Fprintf(out, "%s the task %q is overdue (%s)\n",
							ui.Bad.Render(ui.IconWarn+" Overdue:"), t.Name, t.DisplayTime)
					}
				}
			})

			svc, cfg, cleanup, err := openService(ctx, engine.WithNotifier(notifier))
			if err != nil {
				return err
			}
			defer cleanup()

			log, sync := newLogger(cfg.Log)
			defer sync()

			if err := runRollover(ctx, cmd, svc, yes); err != nil {
				return err
			}

			fmt.Fprintf(out, "%s sweeping every %s, ctrl+c to stop\n",
				ui.Heading(ui.IconClock, "taskr watch"), cfg.Interval())
			scheduler.New(svc, cfg.Interval(), log).Run(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept the rollover prompt without asking")

	return cmd
}

// newLogger builds the watch daemon's zap logger: console output, plus a
// rotated file when configured.
func newLogger(cfg config.LogConfig) (*zap.SugaredLogger, func()) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			zap.InfoLevel,
		),
	}
	if cfg.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
			}),
			zap.InfoLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	return logger.Sugar(), func() { _ = logger.Sync() }
}
