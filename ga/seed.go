// ABOUTME: Seeding Heuristics (C3): blended initial population construction
// ABOUTME: Grounded on original_source/backend/schedule_app/heuristics.py (greedy_construction, initialize_hybrid_population)

package ga

import (
	"math/rand"

	"github.com/aperazzo/timetable-ga/problem"
)

// classOrder returns class indices ordered by ascending constraint score:
// |T(c)| * |suitable rooms| - limit/100, so more restricted classes get
// seeded first.
func classOrder(p *problem.Problem) []int {
	order := make([]int, p.NumClasses())
	score := make([]float64, p.NumClasses())
	for ci, c := range p.Classes {
		suitable := len(p.SuitableRooms(c.Limit))
		score[ci] = float64(len(c.TimeIdx)*suitable) - float64(c.Limit)/100
		order[ci] = ci
	}
	sortBy(order, func(a, b int) bool { return score[a] < score[b] })
	return order
}

// sortBy is a tiny insertion sort helper so this file doesn't need to pull
// in sort.Slice for a handful of callers; kept local since every ordering
// here is over at most a few thousand classes.
func sortBy(xs []int, less func(a, b int) bool) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && less(xs[j], xs[j-1]); j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// seedState tracks occupancy while a single chromosome is under
// construction, so later greedy placements see earlier commitments.
type seedState struct {
	instructorSchedule map[string][]problem.TimePattern
	timeUsage          map[int]int
}

func newSeedState() *seedState {
	return &seedState{
		instructorSchedule: make(map[string][]problem.TimePattern),
		timeUsage:          make(map[int]int),
	}
}

func (s *seedState) commit(p *problem.Problem, classIdx int, g problem.Gene) {
	if g.Time == problem.None {
		return
	}
	s.timeUsage[g.Time]++
	tp := p.Times[g.Time].TimePattern
	for _, instr := range p.Classes[classIdx].Instructors {
		s.instructorSchedule[instr] = append(s.instructorSchedule[instr], tp)
	}
}

func (s *seedState) instructorConflicts(p *problem.Problem, classIdx int, tp problem.TimePattern) int {
	n := 0
	for _, instr := range p.Classes[classIdx].Instructors {
		for _, other := range s.instructorSchedule[instr] {
			if tp.Overlaps(other) {
				n++
			}
		}
	}
	return n
}

// bestPlacement picks the (room,time) maximizing a local score that
// penalizes capacity waste, instructor double-booking against already-seeded
// classes, and over-concentration on one time pattern.
func (s *seedState) bestPlacement(p *problem.Problem, classIdx int, rng *rand.Rand) problem.Gene {
	class := p.Classes[classIdx]
	rooms := p.SuitableRooms(class.Limit)
	if len(rooms) == 0 {
		// No suitable room exists for this class at all; best-effort: pick
		// any room so a gene is still produced (this will surface as an H3
		// violation, which the evaluator must never reject, only count).
		rooms = make([]int, len(p.Rooms))
		for i := range rooms {
			rooms[i] = i
		}
		if len(rooms) == 0 {
			return problem.Gene{Room: problem.None, Time: class.TimeIdx[rng.Intn(len(class.TimeIdx))]}
		}
	}

	bestScore := 0.0
	bestRoom, bestTime := rooms[0], class.TimeIdx[0]
	first := true
	for _, ri := range rooms {
		waste := p.Rooms[ri].Capacity - class.Limit
		for _, ti := range class.TimeIdx {
			tp := p.Times[ti].TimePattern
			conflicts := s.instructorConflicts(p, classIdx, tp)
			concentration := s.timeUsage[ti]
			score := -float64(waste) - float64(conflicts)*1000 - float64(concentration)*10
			if first || score > bestScore {
				bestScore, bestRoom, bestTime, first = score, ri, ti, false
			}
		}
	}
	return problem.Gene{Room: bestRoom, Time: bestTime}
}

// greedyConstruct builds one chromosome via constrained-greedy placement in
// classOrder order.
func greedyConstruct(p *problem.Problem, rng *rand.Rand) problem.Chromosome {
	c := problem.NewChromosome(p)
	state := newSeedState()
	for _, ci := range classOrder(p) {
		g := state.bestPlacement(p, ci, rng)
		c[ci] = g
		state.commit(p, ci, g)
	}
	return c
}

// greedyThenPerturb builds greedily, then reassigns ~10% of genes to random
// valid alternatives.
func greedyThenPerturb(p *problem.Problem, rng *rand.Rand) problem.Chromosome {
	c := greedyConstruct(p, rng)
	numPerturb := len(c) / 10
	if numPerturb == 0 && len(c) > 0 {
		numPerturb = 1
	}
	for i := 0; i < numPerturb; i++ {
		ci := rng.Intn(len(c))
		c[ci] = randomValidGene(p, ci, rng)
	}
	return c
}

// randomValidGene draws a uniformly random candidate time for class ci and a
// uniformly random suitable room (falling back to any room if none are
// suitable).
func randomValidGene(p *problem.Problem, ci int, rng *rand.Rand) problem.Gene {
	class := p.Classes[ci]
	time := class.TimeIdx[rng.Intn(len(class.TimeIdx))]
	rooms := p.SuitableRooms(class.Limit)
	if len(rooms) == 0 {
		if len(p.Rooms) == 0 {
			return problem.Gene{Room: problem.None, Time: time}
		}
		return problem.Gene{Room: rng.Intn(len(p.Rooms)), Time: time}
	}
	return problem.Gene{Room: rooms[rng.Intn(len(rooms))], Time: time}
}

// randomWithCapacityBias builds one chromosome preferring, for each class,
// rooms whose capacity is closest to (but >=) the limit; it tries up to 20
// random (room,time) draws seeking a conflict-free placement against the
// occupancy built so far, else keeps the least-conflicting draw tried.
func randomWithCapacityBias(p *problem.Problem, rng *rand.Rand) problem.Chromosome {
	c := problem.NewChromosome(p)
	state := newSeedState()
	for _, ci := range classOrder(p) {
		class := p.Classes[ci]
		rooms := closestCapacityRooms(p, class.Limit)

		var bestGene problem.Gene
		bestConflicts := -1
		for attempt := 0; attempt < 20; attempt++ {
			var room int
			if len(rooms) > 0 {
				room = rooms[rng.Intn(min(len(rooms), 3))]
			} else if len(p.Rooms) > 0 {
				room = rng.Intn(len(p.Rooms))
			} else {
				room = problem.None
			}
			time := class.TimeIdx[rng.Intn(len(class.TimeIdx))]
			tp := p.Times[time].TimePattern
			conflicts := state.instructorConflicts(p, ci, tp)
			if conflicts == 0 {
				bestGene = problem.Gene{Room: room, Time: time}
				bestConflicts = 0
				break
			}
			if bestConflicts == -1 || conflicts < bestConflicts {
				bestGene = problem.Gene{Room: room, Time: time}
				bestConflicts = conflicts
			}
		}
		c[ci] = bestGene
		state.commit(p, ci, bestGene)
	}
	return c
}

// closestCapacityRooms returns suitable room indices sorted by ascending
// capacity slack (closest fit to limit first).
func closestCapacityRooms(p *problem.Problem, limit int) []int {
	rooms := p.SuitableRooms(limit)
	sortBy(rooms, func(a, b int) bool { return p.Rooms[a].Capacity < p.Rooms[b].Capacity })
	return rooms
}

// Seed produces the blended initial population of size populationSize: 30%
// constrained-greedy, 30% greedy-then-perturb, 40% random-with-capacity-bias.
// Every produced individual satisfies I1 and I2 by construction; seeding
// does not guarantee feasibility.
func Seed(p *problem.Problem, populationSize int, rng *rand.Rand) Population {
	pop := make(Population, 0, populationSize)
	numGreedy := populationSize * 30 / 100
	numPerturb := populationSize * 30 / 100
	numRandom := populationSize - numGreedy - numPerturb

	for i := 0; i < numGreedy; i++ {
		pop = append(pop, &Individual{Chromosome: greedyConstruct(p, rng)})
	}
	for i := 0; i < numPerturb; i++ {
		pop = append(pop, &Individual{Chromosome: greedyThenPerturb(p, rng)})
	}
	for i := 0; i < numRandom; i++ {
		pop = append(pop, &Individual{Chromosome: randomWithCapacityBias(p, rng)})
	}
	return pop
}
