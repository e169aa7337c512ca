// ABOUTME: Individual: one chromosome plus its cached fitness and constraint report
// ABOUTME: Grounded on the teacher's Individual{Genes, Score} shape in ga.go

package ga

import (
	"github.com/aperazzo/timetable-ga/constraint"
	"github.com/aperazzo/timetable-ga/problem"
)

// Individual pairs a chromosome with the fitness last computed for it.
// Fitness is a derived attribute: it goes stale the moment the chromosome
// is mutated and is only trustworthy again after Evaluate runs.
type Individual struct {
	Chromosome problem.Chromosome
	Fitness    float64
	Report     constraint.Report
}

// Clone deep-copies the chromosome so elite survivors never alias a slot
// that gets overwritten next generation.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		Chromosome: ind.Chromosome.Clone(),
		Fitness:    ind.Fitness,
		Report:     ind.Report,
	}
}

// Evaluate recomputes Fitness and Report from the current chromosome.
func (ind *Individual) Evaluate(p *problem.Problem, hardWeight, softWeight float64, enableStudentHardCheck bool) {
	result := constraint.Diagnose(p, ind.Chromosome, enableStudentHardCheck)
	ind.Report = result.Report
	ind.Fitness = result.Fitness(p, hardWeight, softWeight)
}

// Population is an ordered sequence of individuals. I4 requires it sorted by
// fitness, non-increasing (see sortDescending), immediately after every
// evaluation phase.
type Population []*Individual
