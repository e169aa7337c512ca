package ga

import (
	"context"
	"reflect"
	"testing"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/constraint"
	"github.com/aperazzo/timetable-ga/problem"
)

func cfgWith(mod func(*config.Config)) config.Config {
	c := config.Default()
	c.PopulationSize = 20
	c.Generations = 10
	c.Seed = 1
	if mod != nil {
		mod(&c)
	}
	return c
}

func TestRun_TrivialFeasible(t *testing.T) {
	raw := problem.RawProblem{
		Classes: []problem.RawClass{{ID: "c1", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t1", "c1", 96, 12)}}},
		Rooms:   []problem.RawRoom{{ID: "r1", Capacity: 30}},
	}
	p, _, err := problem.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	shared := config.NewShared(cfgWith(func(c *config.Config) { c.Generations = 1 }))
	result, err := Run(context.Background(), p, shared, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Hard.Room != 0 || result.Report.Hard.Capacity != 0 {
		t.Fatalf("want zero hard violations, got %+v", result.Report.Hard)
	}
	if result.Fitness < 50_000 {
		t.Errorf("fitness = %v, want >= 50000", result.Fitness)
	}
}

func TestRun_CapacityForcing(t *testing.T) {
	raw := problem.RawProblem{
		Classes: []problem.RawClass{
			{ID: "small", Limit: 20, CandidateTimes: []problem.TimePattern{mon("t1", "small", 96, 12)}},
			{ID: "big", Limit: 40, CandidateTimes: []problem.TimePattern{mon("t2", "big", 96, 12)}},
		},
		Rooms: []problem.RawRoom{
			{ID: "r25", Capacity: 25},
			{ID: "r50", Capacity: 50},
		},
	}
	p, _, err := problem.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	shared := config.NewShared(cfgWith(nil))
	result, err := Run(context.Background(), p, shared, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Hard.Capacity != 0 {
		t.Errorf("want capacity violations resolved, got %d", result.Report.Hard.Capacity)
	}
	if result.Report.Hard.Room != 0 {
		t.Errorf("want no room conflicts (different rooms), got %d", result.Report.Hard.Room)
	}
}

func TestRun_ForcedRoomConflict(t *testing.T) {
	raw := problem.RawProblem{
		Classes: []problem.RawClass{
			{ID: "c1", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t1", "c1", 96, 12)}},
			{ID: "c2", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t2", "c2", 96, 12)}},
		},
		Rooms: []problem.RawRoom{{ID: "r1", Capacity: 20}},
	}
	p, _, err := problem.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	shared := config.NewShared(cfgWith(nil))
	result, err := Run(context.Background(), p, shared, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Hard.Room != 1 {
		t.Fatalf("want exactly 1 unavoidable room conflict, got %d", result.Report.Hard.Room)
	}
	floor := constraint.Base(p.NumClasses()) - 1000
	if result.Fitness < floor-1e-6 {
		t.Errorf("fitness %v fell below the unavoidable floor %v", result.Fitness, floor)
	}
}

func TestRun_InstructorDoubleBooking(t *testing.T) {
	raw := problem.RawProblem{
		Classes: []problem.RawClass{
			{ID: "c1", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t1", "c1", 96, 12)}, Instructors: []string{"i1"}},
			{ID: "c2", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t2", "c2", 300, 12)}, Instructors: []string{"i1"}},
		},
		Rooms: []problem.RawRoom{{ID: "r1", Capacity: 20}, {ID: "r2", Capacity: 20}},
	}
	p, _, err := problem.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	shared := config.NewShared(cfgWith(nil))
	result, err := Run(context.Background(), p, shared, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Report.Hard.Instructor != 0 {
		t.Errorf("want zero instructor conflicts within the generation budget (disjoint times exist), got %d", result.Report.Hard.Instructor)
	}
}

func TestRun_StagnationBoostTriggers(t *testing.T) {
	raw := problem.RawProblem{
		Classes: []problem.RawClass{
			{ID: "c1", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t1", "c1", 96, 12)}},
			{ID: "c2", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t2", "c2", 96, 12)}},
		},
		Rooms: []problem.RawRoom{{ID: "r1", Capacity: 20}},
	}
	p, _, err := problem.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := cfgWith(func(c *config.Config) {
		c.Generations = 8
		c.StagnationThresh = 2
		// The forced room conflict pins fitness at BASE-1000, below a target of
		// 1.0*BASE, so the run can't early-stop before boosting.
		c.EarlyStopFrac = 1
	})
	shared := config.NewShared(cfg)

	progress := make(chan Update, cfg.Generations+1)
	_, err = Run(context.Background(), p, shared, progress)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(progress)

	boosted := false
	raisedMutation := false
	for u := range progress {
		if u.DiversityBoost {
			boosted = true
		}
		if u.MutationRate > cfg.MutationRate {
			raisedMutation = true
		}
	}
	if !boosted {
		t.Error("want the diversity boost path taken at least once on an instance with one unavoidable room conflict and no room for improvement")
	}
	if !raisedMutation {
		t.Error("want mutation rate observably raised for at least one generation after a boost")
	}
}

func TestRun_BestEverMonotonic(t *testing.T) {
	p := smallProblem(t)
	shared := config.NewShared(cfgWith(nil))
	result, err := Run(context.Background(), p, shared, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	best := result.History.BestPerGen
	for i := 1; i < len(best); i++ {
		if best[i] < best[i-1]-1e-9 {
			t.Fatalf("best-per-gen history not monotonic at index %d: %v -> %v", i, best[i-1], best[i])
		}
	}
	maxHistory := best[0]
	for _, v := range best {
		if v > maxHistory {
			maxHistory = v
		}
	}
	if result.Fitness != maxHistory {
		t.Errorf("final fitness %v != max over history %v", result.Fitness, maxHistory)
	}
}

func TestRun_DeterministicWithFixedSeed(t *testing.T) {
	p := smallProblem(t)
	cfg := cfgWith(func(c *config.Config) { c.Seed = 12345 })

	r1, err := Run(context.Background(), p, config.NewShared(cfg), nil)
	if err != nil {
		t.Fatalf("Run 1: %v", err)
	}
	r2, err := Run(context.Background(), p, config.NewShared(cfg), nil)
	if err != nil {
		t.Fatalf("Run 2: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("two runs with fixed seed and config should be identical:\n%+v\n%+v", r1, r2)
	}
}

func TestRun_DegenerateProblemReturnsImmediately(t *testing.T) {
	p := &problem.Problem{}
	shared := config.NewShared(cfgWith(nil))
	result, err := Run(context.Background(), p, shared, nil)
	if err != nil {
		t.Fatalf("Run on degenerate problem should not error, got: %v", err)
	}
	if len(result.Chromosome) != 0 {
		t.Errorf("want empty chromosome for degenerate problem, got %+v", result.Chromosome)
	}
}

func TestRun_CancellationReturnsBestEver(t *testing.T) {
	p := smallProblem(t)
	cfg := cfgWith(func(c *config.Config) { c.Generations = 1000 })
	shared := config.NewShared(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, p, shared, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Fitness == 0 {
		t.Error("want a defined best-ever fitness even when cancelled immediately")
	}
}
