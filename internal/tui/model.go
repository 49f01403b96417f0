package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/z0m0dan/taskr/internal/engine"
	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/ui"
)

type boardModel struct {
	ctx     context.Context
	svc     *engine.Service
	refresh time.Duration

	width  int
	height int

	tasks    []storage.Task
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	tasks []storage.Task
	err   error
}

type sweptMsg struct {
	res *engine.SweepResult
	err error
}

type mutatedMsg struct {
	action string
	tasks  []storage.Task
	err    error
}

type tickMsg struct{}

func newBoardModel(ctx context.Context, svc *engine.Service, refresh time.Duration) boardModel {
	if refresh <= 0 {
		refresh = 30 * time.Second
	}
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		refresh: refresh,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.TaskList(m.ctx)
		return loadedMsg{tasks: tasks, err: err}
	}
}

func (m boardModel) sweepCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.SweepOverdue(m.ctx)
		return sweptMsg{res: res, err: err}
	}
}

func (m boardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.CompleteTask(m.ctx, id)
		return mutatedMsg{action: "Completed", tasks: tasks, err: err}
	}
}

func (m boardModel) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.RemoveTask(m.ctx, id)
		return mutatedMsg{action: "Removed", tasks: tasks, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.tasks = msg.tasks
		engine.SortByCreation(m.tasks)
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case sweptMsg:
		m.loading = false
		if msg.err != nil {
			m.lastLog = "Sweep failed: " + msg.err.Error()
			return m, nil
		}
		m.tasks = msg.res.Tasks
		engine.SortByCreation(m.tasks)
		m.clampSelection()
		if msg.res.MarkedOverdue > 0 {
			m.lastLog = fmt.Sprintf("%d task(s) went overdue, %d activated.", msg.res.MarkedOverdue, msg.res.Activated)
		}
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = msg.action + " failed: " + msg.err.Error()
			return m, nil
		}
		m.tasks = msg.tasks
		engine.SortByCreation(m.tasks)
		m.clampSelection()
		m.lastLog = msg.action + "."
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.sweepCmd(), m.tickCmd())
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.sweepCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			t := m.selectedTask()
			if t == nil {
				return m, nil
			}
			if t.Status == storage.StatusDone {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %q…", t.Name)
			return m, m.completeCmd(t.ID)
		case "x":
			t := m.selectedTask()
			if t == nil {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Removing %q…", t.Name)
			return m, m.removeCmd(t.ID)
		}
	}
	return m, nil
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) selectedTask() *storage.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconClock, "taskr · today") + "\n\n")

	if m.loading && len(m.tasks) == 0 {
		b.WriteString("Loading…\n")
		return b.String()
	}

	sections := []struct {
		title  string
		status storage.Status
	}{
		{"Ongoing", storage.StatusOngoing},
		{"Overdue", storage.StatusOverdue},
		{"Scheduled", storage.StatusScheduled},
		{"Done", storage.StatusDone},
	}

	if len(m.tasks) == 0 {
		b.WriteString(ui.Muted.Render("(no tasks today)") + "\n")
	}

	for _, sec := range sections {
		lines := make([]string, 0)
		for i := range m.tasks {
			t := &m.tasks[i]
			if t.Status != sec.status {
				continue
			}
			lines = append(lines, m.renderTask(t, i == m.selected))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(ui.H2.Render(sec.title) + "\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString(ui.Dim.Render("j/k: move  c/space: complete  x: remove  r: refresh  q: quit"))
	b.WriteString("\n" + m.lastLog)
	return b.String()
}

func (m boardModel) renderTask(t *storage.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%s %s", cursor, t.Name, ui.Muted.Render(t.DisplayTime))
	if t.DependsOn != nil {
		line += " " + ui.Dim.Render(ui.IconChain+" after "+t.DependsOn.Name)
	}
	return line
}
