package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/z0m0dan/taskr/internal/engine"
)

// RunBoard opens the live board. The board sweeps and refreshes itself on
// the given interval, so the list it shows tracks overdue transitions
// without an external watcher.
func RunBoard(ctx context.Context, svc *engine.Service, refresh time.Duration, out io.Writer) error {
	m := newBoardModel(ctx, svc, refresh)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
