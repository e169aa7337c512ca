// ABOUTME: Dependency-injection surface for the TUI: a swappable engine runner and logger
// ABOUTME: Grounded on the teacher's tui/interfaces.go (GARunner/Dependencies pattern)

package tui

import (
	"context"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/ga"
	"github.com/aperazzo/timetable-ga/problem"
)

// Runner runs the evolution driver. Tests inject a fake that completes
// instantly with a canned Result instead of exercising the real engine.
type Runner interface {
	Run(ctx context.Context, p *problem.Problem, shared *config.Shared, progress chan<- ga.Update) (ga.Result, error)
}

// Logger is the minimal sink the TUI writes diagnostic lines to; nil is
// valid and discards everything.
type Logger interface {
	Printf(format string, args ...any)
}

// Dependencies bundles the above so Model can be constructed with fakes in
// tests, exactly as the teacher's tui.Dependencies does for the playlist
// sorter's Model.
type Dependencies struct {
	Runner Runner
	Logger Logger
}

type defaultRunner struct{}

func (defaultRunner) Run(ctx context.Context, p *problem.Problem, shared *config.Shared, progress chan<- ga.Update) (ga.Result, error) {
	return ga.Run(ctx, p, shared, progress)
}

func defaultDependencies() Dependencies {
	return Dependencies{Runner: defaultRunner{}, Logger: discardLogger{}}
}
