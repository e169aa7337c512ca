// ABOUTME: TUI entry point: runs the Bubble Tea dashboard over an already-loaded problem and config
// ABOUTME: Grounded on the teacher's tui.Run wiring, adapted from playlist sorting to schedule optimization

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/problem"
)

// Run starts the dashboard for prob under shared's live config and runs it
// to completion (either the engine finishes, early-stops, or the user
// presses q/ctrl+c).
func Run(prob *problem.Problem, shared *config.Shared) error {
	m := NewModel(prob, shared, defaultDependencies())
	program := tea.NewProgram(m)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
