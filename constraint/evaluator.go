// ABOUTME: Constraint Evaluator (C2): scalar fitness plus a per-category breakdown for any chromosome
// ABOUTME: Grounded on the bucketed hard checks and tier tables in original_source/backend/schedule_app/constraints.py

package constraint

import (
	"math"
	"sort"

	"github.com/aperazzo/timetable-ga/problem"
)

// HardReport is the per-category count of hard-constraint violations.
type HardReport struct {
	Room, Instructor, Student, Capacity int
}

// SoftReport is the per-category soft-constraint penalty contribution.
type SoftReport struct {
	Gaps, Group float64
}

// Report is the diagnostic breakdown returned alongside fitness.
type Report struct {
	Hard HardReport
	Soft SoftReport
}

// Total returns the weighted violation sum used in the fitness formula.
func (r Report) Total(hardWeight, softWeight float64) float64 {
	hard := float64(r.Hard.Room + r.Hard.Instructor + r.Hard.Student + r.Hard.Capacity)
	soft := r.Soft.Gaps + r.Soft.Group
	return hardWeight*hard + softWeight*soft
}

// Base computes BASE(n) = clamp(n*500, 50_000, 300_000), the fitness
// ceiling a problem of n classes starts from before violations are
// subtracted.
func Base(numClasses int) float64 {
	v := float64(numClasses) * 500
	if v < 50_000 {
		return 50_000
	}
	if v > 300_000 {
		return 300_000
	}
	return v
}

// Evaluate scores a chromosome against problem p: evaluate(problem,
// individual) -> fitness. enableStudentHardCheck toggles the student
// double-booking check, off by default since most instances don't track
// student enrollment precisely enough to make it meaningful.
func Evaluate(p *problem.Problem, c problem.Chromosome, hardWeight, softWeight float64, enableStudentHardCheck bool) float64 {
	r := Diagnose(p, c, enableStudentHardCheck)
	return Base(p.NumClasses()) - r.Total(hardWeight, softWeight)
}

// Diagnose computes the per-category breakdown behind evaluate() in one pass;
// the fitness itself is derived from it with ReportResult.Fitness. It is
// exposed separately from Evaluate because callers that need the breakdown
// (CLI/TUI reporting, tests) would otherwise recompute it twice.
func Diagnose(p *problem.Problem, c problem.Chromosome, enableStudentHardCheck bool) ReportResult {
	rep := Report{}
	rep.Hard.Room = roomConflictCount(p, c)
	rep.Hard.Instructor = bucketedOverlapCount(p, c, instructorKeys)
	if enableStudentHardCheck {
		rep.Hard.Student = bucketedOverlapCount(p, c, studentKeys)
	}
	rep.Hard.Capacity = capacityViolations(p, c)
	rep.Soft.Gaps = instructorGapPenalty(p, c)
	rep.Soft.Group = groupConstraintPenalty(p, c)
	return ReportResult{Report: rep}
}

// ReportResult wraps Report so Fitness can be derived with the caller's own
// weights without re-running the (expensive) bucketed scans.
type ReportResult struct {
	Report
}

// Fitness applies the weights to a precomputed report.
func (r ReportResult) Fitness(p *problem.Problem, hardWeight, softWeight float64) float64 {
	return Base(p.NumClasses()) - r.Total(hardWeight, softWeight)
}

func instructorKeys(p *problem.Problem, ci int) []string {
	return p.Classes[ci].Instructors
}

func studentKeys(p *problem.Problem, ci int) []string {
	return p.Classes[ci].Students
}

// roomConflictCount implements H1: bucket classes by their assigned room,
// then within each room's bucket do pairwise overlap checks. This keeps
// complexity O(sum b_i^2) rather than O(n^2).
func roomConflictCount(p *problem.Problem, c problem.Chromosome) int {
	buckets := make(map[int][]int)
	for ci, g := range c {
		if g.Room == problem.None || g.Time == problem.None {
			continue
		}
		buckets[g.Room] = append(buckets[g.Room], ci)
	}
	count := 0
	for _, members := range buckets {
		count += pairwiseOverlaps(p, c, members, nil)
	}
	return count
}

// bucketedOverlapCount implements H2/H4's shared shape: bucket classes by
// each of the grouping keys a class carries (instructors or students), then
// within each bucket do pairwise overlap checks, deduplicating pairs that
// land in more than one shared bucket (e.g. two classes sharing two
// instructors).
func bucketedOverlapCount(p *problem.Problem, c problem.Chromosome, keysFor func(*problem.Problem, int) []string) int {
	buckets := make(map[string][]int)
	for ci, g := range c {
		if g.Room == problem.None || g.Time == problem.None {
			continue
		}
		for _, k := range keysFor(p, ci) {
			buckets[k] = append(buckets[k], ci)
		}
	}
	seen := make(map[[2]int]bool)
	count := 0
	for _, members := range buckets {
		count += pairwiseOverlaps(p, c, members, seen)
	}
	return count
}

// pairwiseOverlaps counts overlapping pairs within members, skipping pairs
// already recorded in seen (pass nil when the caller's buckets already
// partition classes disjointly, as room buckets do).
func pairwiseOverlaps(p *problem.Problem, c problem.Chromosome, members []int, seen map[[2]int]bool) int {
	count := 0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			a, b := members[i], members[j]
			if a > b {
				a, b = b, a
			}
			if seen != nil {
				pair := [2]int{a, b}
				if seen[pair] {
					continue
				}
			}
			ta := p.Times[c[a].Time].TimePattern
			tb := p.Times[c[b].Time].TimePattern
			if ta.Overlaps(tb) {
				if seen != nil {
					seen[[2]int{a, b}] = true
				}
				count++
			}
		}
	}
	return count
}

func capacityViolations(p *problem.Problem, c problem.Chromosome) int {
	count := 0
	for ci, g := range c {
		if g.Room == problem.None {
			continue
		}
		if p.Rooms[g.Room].Capacity < p.Classes[ci].Limit {
			count++
		}
	}
	return count
}

// instructorGapPenalty implements S1: group each instructor's class starts
// by day, sort, and penalize consecutive gaps over 12 slots (60 minutes).
// Only start-to-start differences are used, not end-to-start — an
// intentional, preserved quirk of the source design.
func instructorGapPenalty(p *problem.Problem, c problem.Chromosome) float64 {
	penalty := 0.0
	for _, classIdxs := range p.InstructorClasses {
		perDay := make(map[int][]int)
		for _, ci := range classIdxs {
			g := c[ci]
			if g.Time == problem.None {
				continue
			}
			tp := p.Times[g.Time].TimePattern
			for d := 0; d < 7; d++ {
				if tp.Days[d] {
					perDay[d] = append(perDay[d], tp.Start)
				}
			}
		}
		for _, starts := range perDay {
			sort.Ints(starts)
			for i := 1; i < len(starts); i++ {
				gap := starts[i] - starts[i-1]
				if gap > 12 {
					penalty += 0.1 * float64(gap-12)
				}
			}
		}
	}
	return penalty
}

// groupConstraintPenalty implements S2's three kinds, each with a strength
// tier table keyed by (kind, strength[, distance band]) — a fixed table
// rather than chained conditionals.
func groupConstraintPenalty(p *problem.Problem, c problem.Chromosome) float64 {
	penalty := 0.0
	for _, gc := range p.GroupConstraints {
		members := gc.MemberIdx
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				ga, gb := c[a], c[b]
				if ga.Time == problem.None || gb.Time == problem.None {
					continue
				}
				ta := p.Times[ga.Time].TimePattern
				tb := p.Times[gb.Time].TimePattern

				switch gc.Kind {
				case problem.BTB:
					if ta.SharesDayAdjacent(tb) {
						penalty += btbTier(gc.Strength, roomDistance(p, ga.Room, gb.Room))
					}
				case problem.DiffTime:
					if ta.Overlaps(tb) {
						penalty += pairTier(gc.Strength)
					}
				case problem.SameTime:
					if ta.SharesDay(tb) && !ta.Overlaps(tb) {
						penalty += pairTier(gc.Strength)
					}
				}
			}
		}
	}
	return penalty
}

func roomDistance(p *problem.Problem, roomA, roomB int) float64 {
	locA, locB := problem.Point{}, problem.Point{}
	if roomA != problem.None {
		locA = p.Rooms[roomA].Location
	}
	if roomB != problem.None {
		locB = p.Rooms[roomB].Location
	}
	dx, dy := locA.X-locB.X, locA.Y-locB.Y
	return math.Sqrt(dx*dx+dy*dy) * 10
}

// btbTier is the BTB penalty table: only PROHIBITED, STRONGLY_DISCOURAGED
// and DISCOURAGED have a defined table; other strengths under BTB
// contribute no penalty, since the source never defines a proximity reward
// for a BTB pairing that already achieved adjacency. The mid/near boundary
// is exclusive at 50 (distance == 50 falls into near), matching the source.
func btbTier(strength problem.ConstraintStrength, distance float64) float64 {
	var far, mid, near float64
	switch strength {
	case problem.Prohibited:
		far, mid, near = 100.0, 20.0, 2.0
	case problem.StronglyDiscouraged:
		far, mid, near = 50.0, 10.0, 1.0
	case problem.Discouraged:
		far, mid, near = 20.0, 5.0, 0.5
	default:
		return 0
	}
	switch {
	case distance > 200:
		return far
	case distance > 50:
		return mid
	default:
		return near
	}
}

// pairTier is the DIFF_TIME/SAME_TIME penalty table: REQUIRED(50),
// STRONGLY_PREFERRED(20), PREFERRED(10); any other strength contributes no
// penalty for these two kinds.
func pairTier(strength problem.ConstraintStrength) float64 {
	switch strength {
	case problem.Required:
		return 50.0
	case problem.StronglyPreferred:
		return 20.0
	case problem.Preferred:
		return 10.0
	default:
		return 0
	}
}
