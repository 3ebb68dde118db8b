package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Task is a unit of work shown behind a spinner.
type Task func(ctx context.Context) error

// taskDoneMsg signals that the task returned.
type taskDoneMsg struct {
	err error
}

// taskModel renders a spinner until the task finishes.
type taskModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

func newTaskModel(message string) taskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return taskModel{spinner: s, message: message}
}

// Init implements tea.Model.
func (m taskModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m taskModel) View() string {
	if m.done {
		if m.err != nil {
			return ErrorStyle.Render(SymbolCross+" "+m.message) + "\n"
		}
		return SuccessStyle.Render(SymbolCheck+" "+m.message) + "\n"
	}
	return m.spinner.View() + " " + MessageStyle.Render(m.message)
}

// RunWithSpinner runs task, rendering a spinner on stderr when the terminal
// is interactive. In non-interactive mode the task runs with no output.
// The task's error is returned unchanged.
func RunWithSpinner(ctx context.Context, message string, task Task) error {
	if !IsInteractive() {
		return task(ctx)
	}
	return runWithProgram(ctx, os.Stderr, message, task)
}

func runWithProgram(ctx context.Context, out io.Writer, message string, task Task) error {
	program := tea.NewProgram(
		newTaskModel(message),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	result := make(chan error, 1)
	go func() {
		err := task(ctx)
		result <- err
		program.Send(taskDoneMsg{err: err})
	}()

	if _, err := program.Run(); err != nil {
		// Rendering failed or the context was cancelled; the task result still wins.
		taskErr := <-result
		if taskErr != nil {
			return taskErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("progress display failed: %w", err)
	}
	return <-result
}
