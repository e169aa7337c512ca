// ABOUTME: Chromosome representation: a dense array indexed by compact class index
// ABOUTME: Replaces the source's keyed container with a dense array indexed by compact class index

package problem

// None is the sentinel for "no room" / "no time pattern" in a Gene, used
// when a class has no candidate left to assign (§3: a "bottom" appears only
// when no candidate exists).
const None = -1

// Gene is one class's assignment: a room index and a global time-pattern
// index, or None for either.
type Gene struct {
	Room int
	Time int
}

// Chromosome is a total function Classes -> (Room, Time), one Gene per
// compact class index (invariant I1 by construction: len(Chromosome) ==
// Problem.NumClasses() always).
type Chromosome []Gene

// NewChromosome returns a chromosome with every gene unassigned, sized to p.
func NewChromosome(p *Problem) Chromosome {
	c := make(Chromosome, p.NumClasses())
	for i := range c {
		c[i] = Gene{Room: None, Time: None}
	}
	return c
}

// Clone returns an independent deep copy (elite clones must not alias their
// source, per §3's lifecycle rule).
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// ValidAgainst checks invariants I1 and I2: the chromosome covers exactly
// Problem's classes, and every assigned time belongs to its class's
// candidate set.
func (c Chromosome) ValidAgainst(p *Problem) bool {
	if len(c) != p.NumClasses() {
		return false
	}
	for ci, g := range c {
		if g.Time == None {
			continue
		}
		if g.Time < 0 || g.Time >= len(p.Times) {
			return false
		}
		if p.Times[g.Time].ClassIdx != ci {
			return false
		}
	}
	return true
}
