// ABOUTME: Evolution Driver (C5): generation loop, elitism, stagnation, diversity boost, early stop
// ABOUTME: Grounded on the teacher's geneticSort main loop in ga.go, merged with genetic_algorithm.py's elitism/tournament/crossover shape

package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/constraint"
	"github.com/aperazzo/timetable-ga/pool"
	"github.com/aperazzo/timetable-ga/problem"
)

// mutationDecayFraction is how far the mutation rate moves back toward its
// configured initial value each generation: it decays 2% per generation
// toward that value.
const mutationDecayFraction = 0.02

// repairProbability is the per-child chance of running repair after
// breeding.
const repairProbability = 0.10

// Run is the C5 contract: orchestrate generations over problem p using the
// config read from shared, streaming one Update per generation on progress
// (which may be nil). It returns the best-ever individual as a Result.
// ctx's cancellation is checked between generations; a cancelled run still
// returns the current best-ever.
func Run(ctx context.Context, p *problem.Problem, shared *config.Shared, progress chan<- Update) (Result, error) {
	cfg := shared.Get()
	if err := config.Validate(cfg); err != nil {
		return Result{}, err
	}

	if p.NumClasses() == 0 || p.NumRooms() == 0 {
		// Degenerate problem: the driver tolerates this by returning
		// immediately with an empty chromosome and a defined, low fitness.
		empty := &Individual{Chromosome: problem.NewChromosome(p), Fitness: constraint.Base(p.NumClasses())}
		return buildResult(p, empty, History{BestPerGen: []float64{empty.Fitness}, AvgPerGen: []float64{empty.Fitness}}), nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	workers := pool.NewWorkerPool(cfg.PopulationSize)
	defer workers.Close()

	pop := Seed(p, cfg.PopulationSize, rng)
	if err := checkInvariants(p, pop); err != nil {
		return Result{}, err
	}
	evaluateAll(workers, p, pop, cfg)
	sortDescending(pop)

	bestEver := pop[0].Clone()
	history := History{
		BestPerGen: []float64{pop[0].Fitness},
		AvgPerGen:  []float64{avgFitness(pop)},
	}

	mutationRate := cfg.MutationRate
	stagnation := 0
	base := constraint.Base(p.NumClasses())
	target := cfg.EarlyStopFrac * base

	for gen := 1; gen <= cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return buildResult(p, bestEver, history), nil
		default:
		}

		cfg = shared.Get() // re-read every generation so mid-run retuning applies

		pop = breed(p, pop, cfg, mutationRate, rng)
		if err := checkInvariants(p, pop); err != nil {
			return Result{}, err
		}
		evaluateAll(workers, p, pop, cfg)
		sortDescending(pop)

		improvement := pop[0].Fitness - bestEver.Fitness
		if pop[0].Fitness > bestEver.Fitness {
			bestEver = pop[0].Clone()
		}
		if improvement > 1.0 {
			stagnation = 0
		} else {
			stagnation++
		}

		boosted := false
		if stagnation >= cfg.StagnationThresh {
			diversityBoost(p, pop, bestEver, &mutationRate, cfg, rng)
			evaluateAll(workers, p, pop, cfg)
			sortDescending(pop)
			if pop[0].Fitness > bestEver.Fitness {
				bestEver = pop[0].Clone()
			}
			stagnation = 0
			boosted = true
		}

		mutationRate += (cfg.MutationRate - mutationRate) * mutationDecayFraction

		history.BestPerGen = append(history.BestPerGen, pop[0].Fitness)
		history.AvgPerGen = append(history.AvgPerGen, avgFitness(pop))

		sendProgress(progress, Update{
			Generation:        gen,
			BestFitness:       bestEver.Fitness,
			AvgFitness:        history.AvgPerGen[len(history.AvgPerGen)-1],
			StagnationCounter: stagnation,
			MutationRate:      mutationRate,
			DiversityBoost:    boosted,
		})

		if bestEver.Fitness >= target {
			break
		}
	}

	return buildResult(p, bestEver, history), nil
}

// checkInvariants guards I1/I2 after breeding: a variation operator that
// produces a chromosome missing a class key or pointing at a foreign time
// pattern is a bug in the operator, not recoverable user input, so it is
// fatal rather than silently scored.
func checkInvariants(p *problem.Problem, pop Population) error {
	for _, ind := range pop {
		if !ind.Chromosome.ValidAgainst(p) {
			return fmt.Errorf("ga: bred chromosome fails I1/I2: %w", ErrInternalInvariantViolation)
		}
	}
	return nil
}

func sendProgress(progress chan<- Update, u Update) {
	if progress == nil {
		return
	}
	select {
	case progress <- u:
	default:
		// Consumer is behind; drop rather than stall the hot loop.
	}
}

// breed builds the next generation: E elite clones, then tournament-select,
// crossover, mutate and probabilistically repair pairs of children until
// the population is full again.
func breed(p *problem.Problem, pop Population, cfg config.Config, mutationRate float64, rng *rand.Rand) Population {
	next := make(Population, 0, cfg.PopulationSize)
	for i := 0; i < cfg.ElitismSize && i < len(pop); i++ {
		next = append(next, pop[i].Clone())
	}
	for len(next) < cfg.PopulationSize {
		parent1 := tournamentSelect(pop, cfg.TournamentSize, rng)
		parent2 := tournamentSelect(pop, cfg.TournamentSize, rng)
		c1, c2 := crossover(parent1.Chromosome, parent2.Chromosome, cfg.CrossoverRate, rng)
		mutate(p, c1, mutationRate, rng)
		mutate(p, c2, mutationRate, rng)
		if rng.Float64() < repairProbability {
			repair(p, c1)
		}
		if rng.Float64() < repairProbability {
			repair(p, c2)
		}
		next = append(next, &Individual{Chromosome: c1})
		if len(next) < cfg.PopulationSize {
			next = append(next, &Individual{Chromosome: c2})
		}
	}
	return next
}

// diversityBoost is the stagnation-escape bundle: raise mutation pressure,
// inject fresh random individuals into the population's middle band, shake
// up a fraction of the rest with extra mutation passes, and try to improve
// on the best-ever directly via repair.
func diversityBoost(p *problem.Problem, pop Population, bestEver *Individual, mutationRate *float64, cfg config.Config, rng *rand.Rand) {
	*mutationRate *= 1.5
	if *mutationRate > 0.5 {
		*mutationRate = 0.5
	}

	n := len(pop)
	eliteSize := cfg.ElitismSize
	if eliteSize > n {
		eliteSize = n
	}
	nonElite := n - eliteSize
	if nonElite <= 0 {
		return
	}

	start := eliteSize + nonElite*2/5
	end := eliteSize + nonElite*3/5
	if end <= start {
		end = start + 1
	}
	if end > n {
		end = n
	}
	for i := start; i < end; i++ {
		pop[i] = &Individual{Chromosome: randomWithCapacityBias(p, rng)}
	}

	passes := 3 + rng.Intn(3)
	targets := nonElite * 3 / 10
	for pass := 0; pass < passes; pass++ {
		for t := 0; t < targets; t++ {
			idx := eliteSize + rng.Intn(nonElite)
			mutate(p, pop[idx].Chromosome, *mutationRate, rng)
		}
	}

	clone := bestEver.Clone()
	repair(p, clone.Chromosome)
	clone.Evaluate(p, cfg.HardWeight, cfg.SoftWeight, cfg.StudentHardCheck)
	if eliteSize > 0 && clone.Fitness > bestEver.Fitness {
		pop[eliteSize-1] = clone
	}
}

// evaluateAll runs constraint evaluation over every individual, parallelized
// across workers: each individual is independent and the Problem instance
// is read-only, so population evaluation is the one place the driver
// fans out.
func evaluateAll(workers *pool.WorkerPool, p *problem.Problem, pop Population, cfg config.Config) {
	for _, ind := range pop {
		ind := ind
		workers.Submit(func() {
			ind.Evaluate(p, cfg.HardWeight, cfg.SoftWeight, cfg.StudentHardCheck)
		})
	}
	workers.Wait()
}

// sortDescending orders the population by fitness, non-increasing, with a
// stable sort so equal-fitness individuals keep their relative order
// (invariant I4).
func sortDescending(pop Population) {
	sort.SliceStable(pop, func(i, j int) bool { return pop[i].Fitness > pop[j].Fitness })
}

func avgFitness(pop Population) float64 {
	if len(pop) == 0 {
		return 0
	}
	total := 0.0
	for _, ind := range pop {
		total += ind.Fitness
	}
	return total / float64(len(pop))
}
