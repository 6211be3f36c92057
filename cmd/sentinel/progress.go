package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/rules"
)

var progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFFF"))

// runTraversal executes the async traversal. With quiet set, it runs
// inline; otherwise a spinner shows relationships analyzed while the
// traversal runs in the background.
func runTraversal(ctx context.Context, g *graph.Graph, opts rules.TraversalOptions, quiet bool) (rules.TraversalResult, error) {
	if quiet {
		return rules.FindCollisionPathsAsync(ctx, g, opts)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newProgressModel())

	opts.Progress = func(analyzed int) {
		program.Send(analyzedMsg(analyzed))
	}

	type outcome struct {
		result rules.TraversalResult
		err    error
	}
	outcomes := make(chan outcome, 1)
	go func() {
		result, err := rules.FindCollisionPathsAsync(ctx, g, opts)
		outcomes <- outcome{result, err}
		program.Send(doneMsg{})
	}()

	// A progress display failure must not kill the traversal; the result
	// is awaited either way. If the display quit early (Ctrl+C), cancel
	// the context so the traversal wraps up at the next hop and returns
	// its partial result.
	program.Run()
	cancel()
	o := <-outcomes
	return o.result, o.err
}

type analyzedMsg int

type doneMsg struct{}

type progressModel struct {
	spin     spinner.Model
	analyzed int
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = progressStyle
	return progressModel{spin: s}
}

func (m progressModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyzedMsg:
		m.analyzed = int(msg)
		return m, nil
	case doneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}

func (m progressModel) View() string {
	return fmt.Sprintf("%s analyzing relationships... %d\n", m.spin.View(), m.analyzed)
}
