// ABOUTME: Bubble Tea model for the live generation/fitness dashboard
// ABOUTME: Grounded on the teacher's tui/model.go Model/Update/View split, trimmed of playlist-specific viewport/undo-redo

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/constraint"
	"github.com/aperazzo/timetable-ga/ga"
	"github.com/aperazzo/timetable-ga/problem"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	hardBadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	hardOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	boostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type updateMsg ga.Update

type doneMsg struct {
	result ga.Result
	err    error
}

// Model is the dashboard's Bubble Tea state: the last progress snapshot
// plus whatever the run has finished with, if anything.
type Model struct {
	deps Dependencies

	problem *problem.Problem
	shared  *config.Shared

	cancel  context.CancelFunc
	events  <-chan ga.Update
	results <-chan doneMsg

	generations int
	gen         int
	best        float64
	avg         float64
	report      constraint.Report
	mutation    float64
	boosted     bool

	bar progress.Model

	done   bool
	err    error
	result ga.Result
}

// NewModel wires a dashboard around an already-loaded problem and live
// config, starting the engine run as soon as the program starts.
func NewModel(p *problem.Problem, shared *config.Shared, deps Dependencies) Model {
	if deps.Runner == nil {
		deps = defaultDependencies()
	}
	return Model{
		deps:        deps,
		problem:     p,
		shared:      shared,
		generations: shared.Get().Generations,
		mutation:    shared.Get().MutationRate,
		bar:         progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.startRun
}

func (m Model) startRun() tea.Msg {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan ga.Update, 8)
	resultCh := make(chan doneMsg, 1)

	go func() {
		result, err := m.deps.Runner.Run(ctx, m.problem, m.shared, events)
		close(events)
		resultCh <- doneMsg{result: result, err: err}
	}()

	// Stash the cancel func and channels on the model via a follow-up
	// message rather than mutating m (Init's Cmd runs before Update's loop
	// owns m), so the first real Update call wires them in.
	return runStartedMsg{cancel: cancel, events: events, resultCh: resultCh}
}

type runStartedMsg struct {
	cancel   context.CancelFunc
	events   <-chan ga.Update
	resultCh <-chan doneMsg
}

func waitForEvent(events <-chan ga.Update, resultCh <-chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case u, ok := <-events:
			if !ok {
				return <-resultCh
			}
			return updateMsg(u)
		case d := <-resultCh:
			return d
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case runStartedMsg:
		m.cancel = msg.cancel
		m.events = msg.events
		m.results = msg.resultCh
		return m, waitForEvent(msg.events, msg.resultCh)
	case updateMsg:
		m.gen = msg.Generation
		m.best = msg.BestFitness
		m.avg = msg.AvgFitness
		m.mutation = msg.MutationRate
		m.boosted = msg.DiversityBoost
		return m, waitForEvent(m.events, m.results)
	case doneMsg:
		m.done = true
		m.err = msg.err
		m.result = msg.result
		m.report = msg.result.Report
		m.best = msg.result.Fitness
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("timetable-ga") + "\n\n")

	if m.err != nil {
		return b.String() + fmt.Sprintf("error: %v\n", m.err)
	}

	pct := 0.0
	if m.generations > 0 {
		pct = float64(m.gen) / float64(m.generations)
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("generation %d/%d", m.gen, m.generations)) + "\n")
	b.WriteString(m.bar.ViewAs(pct) + "\n\n")

	b.WriteString(fmt.Sprintf("best fitness  %.2f\n", m.best))
	b.WriteString(fmt.Sprintf("avg fitness   %.2f\n", m.avg))
	b.WriteString(fmt.Sprintf("mutation rate %.3f", m.mutation))
	if m.boosted {
		b.WriteString("  " + boostStyle.Render("[diversity boost]"))
	}
	b.WriteString("\n\n")

	hardStyle := hardOKStyle
	hardTotal := m.report.Hard.Room + m.report.Hard.Instructor + m.report.Hard.Student + m.report.Hard.Capacity
	if hardTotal > 0 {
		hardStyle = hardBadStyle
	}
	hard := fmt.Sprintf("room=%d instructor=%d student=%d capacity=%d",
		m.report.Hard.Room, m.report.Hard.Instructor, m.report.Hard.Student, m.report.Hard.Capacity)
	soft := fmt.Sprintf("gaps=%.2f group=%.2f", m.report.Soft.Gaps, m.report.Soft.Group)

	b.WriteString(panelStyle.Render("hard: " + hardStyle.Render(hard) + "\nsoft: " + soft))
	b.WriteString("\n\n" + labelStyle.Render("q to quit"))

	if m.done {
		b.WriteString("\n" + labelStyle.Render("run complete"))
	}
	return b.String()
}

// discardLogger satisfies Logger without writing anywhere, the TUI's
// default when no Logger dependency is supplied.
type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

var _ Logger = discardLogger{}
