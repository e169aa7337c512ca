// ABOUTME: Variation Operators (C4): tournament selection, one-point crossover, targeted mutation, repair
// ABOUTME: Grounded on the teacher's tournamentSelection/orderCrossover/mutate shape in ga.go, merged with heuristics.py's repair

package ga

import (
	"math/rand"

	"github.com/aperazzo/timetable-ga/problem"
)

// tournamentSelect draws k individuals uniformly with replacement and
// returns the fittest.
func tournamentSelect(pop Population, k int, rng *rand.Rand) *Individual {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < k; i++ {
		candidate := pop[rng.Intn(len(pop))]
		if candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best
}

// crossover is one-point recombination over the fixed class ordering (the
// chromosome's own index order, stable since it is the problem's compact
// class index). With probability 1-crossoverRate, children are clones of
// their parents.
func crossover(parent1, parent2 problem.Chromosome, crossoverRate float64, rng *rand.Rand) (child1, child2 problem.Chromosome) {
	if rng.Float64() >= crossoverRate || len(parent1) < 2 {
		return parent1.Clone(), parent2.Clone()
	}
	split := 1 + rng.Intn(len(parent1)-1)

	child1 = make(problem.Chromosome, len(parent1))
	child2 = make(problem.Chromosome, len(parent1))
	copy(child1[:split], parent1[:split])
	copy(child1[split:], parent2[split:])
	copy(child2[:split], parent2[:split])
	copy(child2[split:], parent1[split:])
	return child1, child2
}

// mutate applies per-gene mutation at rate p_m: for each class, with
// probability p_m, mutate room, time, or both. Room mutation
// picks the capacity-closest suitable room 70% of the time, else a uniform
// random room; time mutation picks uniformly from the class's candidates.
func mutate(p *problem.Problem, c problem.Chromosome, rate float64, rng *rand.Rand) {
	for ci := range c {
		if rng.Float64() >= rate {
			continue
		}
		class := p.Classes[ci]
		switch rng.Intn(3) {
		case 0:
			c[ci].Room = mutateRoom(p, class, rng)
		case 1:
			c[ci].Time = class.TimeIdx[rng.Intn(len(class.TimeIdx))]
		default:
			c[ci].Room = mutateRoom(p, class, rng)
			c[ci].Time = class.TimeIdx[rng.Intn(len(class.TimeIdx))]
		}
	}
}

func mutateRoom(p *problem.Problem, class problem.Class, rng *rand.Rand) int {
	if rng.Float64() < 0.70 {
		rooms := closestCapacityRooms(p, class.Limit)
		if len(rooms) > 0 {
			return rooms[0]
		}
	}
	if len(p.Rooms) == 0 {
		return problem.None
	}
	return rng.Intn(len(p.Rooms))
}

// repair is a best-effort local fix-up: capacity repair first, then
// room-conflict relocation. It never worsens H3 and never introduces a
// (room,time) collision it can detect.
func repair(p *problem.Problem, c problem.Chromosome) {
	repairCapacity(p, c)
	repairRoomConflicts(p, c)
}

func repairCapacity(p *problem.Problem, c problem.Chromosome) {
	for ci, g := range c {
		if g.Room == problem.None {
			continue
		}
		if p.Rooms[g.Room].Capacity < p.Classes[ci].Limit {
			rooms := closestCapacityRooms(p, p.Classes[ci].Limit)
			if len(rooms) > 0 {
				c[ci].Room = rooms[0]
			}
		}
	}
}

func repairRoomConflicts(p *problem.Problem, c problem.Chromosome) {
	occupied := make(map[[2]int]int) // (room, global time idx) -> class idx holding it first
	for ci, g := range c {
		if g.Room == problem.None || g.Time == problem.None {
			continue
		}
		key := [2]int{g.Room, g.Time}
		if _, taken := occupied[key]; !taken {
			occupied[key] = ci
			continue
		}
		// ci collides with an earlier class at (room,time): try a different
		// suitable room at the same time first.
		relocated := false
		for _, ri := range p.SuitableRooms(p.Classes[ci].Limit) {
			altKey := [2]int{ri, g.Time}
			if _, taken := occupied[altKey]; !taken {
				c[ci].Room = ri
				occupied[altKey] = ci
				relocated = true
				break
			}
		}
		if relocated {
			continue
		}
		// No free room at this time: keep the room, try a different
		// candidate time for this class.
		for _, ti := range p.Classes[ci].TimeIdx {
			altKey := [2]int{g.Room, ti}
			if _, taken := occupied[altKey]; !taken {
				c[ci].Time = ti
				occupied[altKey] = ci
				break
			}
		}
	}
}
