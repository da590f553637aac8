// Package tui holds the terminal presentation: styles, render panels and a
// status spinner shown while a blocking fetch runs.
package tui

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/zappabad/lojistik/tui/styles"
)

// Task is a blocking unit of work run behind the spinner.
type Task func(ctx context.Context) error

type doneMsg struct {
	err error
}

// statusModel shows a spinner until its task reports completion.
type statusModel struct {
	spinner spinner.Model
	label   string
	task    Task
	ctx     context.Context
	cancel  context.CancelFunc
	done    bool
	err     error
}

func newStatusModel(ctx context.Context, label string, task Task) statusModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ctx, cancel := context.WithCancel(ctx)
	return statusModel{
		spinner: sp,
		label:   label,
		task:    task,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m statusModel) Init() tea.Cmd {
	run := func() tea.Msg {
		return doneMsg{err: m.task(m.ctx)}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// the task observes the cancelled context and reports back
			m.cancel()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m statusModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + styles.WarnStyle.Render(m.label)
}

// RunWithStatus runs task while a spinner labelled label is drawn on out.
// When out is not a terminal or enabled is false, task runs directly. Ctrl+C
// cancels the task's context. It returns the task's error.
func RunWithStatus(ctx context.Context, out io.Writer, label string, enabled bool, task Task) error {
	if !enabled || !IsTerminal(out) {
		return task(ctx)
	}

	m := newStatusModel(ctx, label, task)
	defer m.cancel()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return final.(statusModel).err
}

// TerminalWidth returns the column count of w, or 0 when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !IsTerminal(w) {
		return 0
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0
	}
	return width
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
