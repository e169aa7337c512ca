package ga

import (
	"math/rand"
	"testing"

	"github.com/aperazzo/timetable-ga/problem"
)

func mon(id, owner string, start, length int) problem.TimePattern {
	var days [7]bool
	days[0] = true
	return problem.TimePattern{ID: id, OwnerClassID: owner, Days: days, Start: start, Length: length}
}

func smallProblem(t *testing.T) *problem.Problem {
	t.Helper()
	raw := problem.RawProblem{
		Classes: []problem.RawClass{
			{ID: "c1", Limit: 10, CandidateTimes: []problem.TimePattern{mon("t1", "c1", 300, 12), mon("t1b", "c1", 500, 12)}, Instructors: []string{"i1"}},
			{ID: "c2", Limit: 20, CandidateTimes: []problem.TimePattern{mon("t2", "c2", 96, 12)}, Instructors: []string{"i2"}},
			{ID: "c3", Limit: 15, CandidateTimes: []problem.TimePattern{mon("t3", "c3", 300, 12)}, Instructors: []string{"i1"}},
		},
		Rooms: []problem.RawRoom{
			{ID: "r1", Capacity: 20},
			{ID: "r2", Capacity: 30},
		},
	}
	p, _, err := problem.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestSeed_ProducesRequestedSize(t *testing.T) {
	p := smallProblem(t)
	rng := rand.New(rand.NewSource(1))
	pop := Seed(p, 20, rng)
	if len(pop) != 20 {
		t.Fatalf("want 20 individuals, got %d", len(pop))
	}
}

func TestSeed_SatisfiesI1AndI2(t *testing.T) {
	p := smallProblem(t)
	rng := rand.New(rand.NewSource(2))
	pop := Seed(p, 30, rng)
	for idx, ind := range pop {
		if !ind.Chromosome.ValidAgainst(p) {
			t.Fatalf("individual %d violates I1/I2: %+v", idx, ind.Chromosome)
		}
	}
}

func TestGreedyConstruct_AvoidsInstructorConflictWhenPossible(t *testing.T) {
	p := smallProblem(t)
	rng := rand.New(rand.NewSource(3))
	c := greedyConstruct(p, rng)

	c1Idx, c3Idx := p.ClassIndex("c1"), p.ClassIndex("c3")
	t1 := p.Times[c[c1Idx].Time].TimePattern
	t3 := p.Times[c[c3Idx].Time].TimePattern
	if t1.Overlaps(t3) {
		t.Errorf("c1 and c3 share instructor i1 and both have non-overlapping candidate times available; greedy should have avoided the overlap")
	}
}
