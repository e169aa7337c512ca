// ABOUTME: Plain-terminal CLI driver: loads a problem, runs the engine, prints progress and a final report
// ABOUTME: Grounded on the teacher's cli.go RunCLI/cliGeneticSort (signal cancellation, tabwriter summary, fitness-improvement progress lines)

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/ga"
	"github.com/aperazzo/timetable-ga/problem"
)

// RunCLI loads opts.ProblemPath, runs the engine to completion (or until
// SIGINT/SIGTERM), and prints a tabwriter summary. Mirrors the teacher's
// RunCLI: context.WithCancel wired to signal.Notify for cooperative
// cancellation, checked between generations so an interrupt never cuts off
// mid-generation.
func RunCLI(opts RunOptions) error {
	logger, closeLog, err := SetupDebugLog(opts.Debug)
	if err != nil {
		return fmt.Errorf("cli: debug log: %w", err)
	}
	defer closeLog()

	raw, err := loadDemoProblem(opts.ProblemPath)
	if err != nil {
		return err
	}
	prob, report, err := problem.Load(raw)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	debugf(logger, "loaded problem: %+v", report)
	fmt.Printf("loaded %d classes, %d rooms (dropped %d classes, %d rooms)\n",
		report.ClassesAfter, report.RoomsAfter, len(report.DroppedClasses), len(report.DroppedRooms))

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.Generations != 0 {
		cfg.Generations = opts.Generations
	}
	if opts.Population != 0 {
		cfg.PopulationSize = opts.Population
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	shared := config.NewShared(cfg)

	if opts.ConfigPath != "" {
		if stop, err := config.WatchFile(opts.ConfigPath, shared, logger); err == nil {
			defer stop()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nreceived interrupt, stopping after current generation...")
		cancel()
	}()

	progress := make(chan ga.Update, 8)
	done := make(chan struct{})
	go printProgress(progress, done)

	start := time.Now()
	result, err := ga.Run(ctx, prob, shared, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}

	printSummary(result, time.Since(start))

	if opts.OutPath != "" {
		if err := writeResult(opts.OutPath, result); err != nil {
			return err
		}
		fmt.Printf("wrote result to %s\n", opts.OutPath)
	}
	return nil
}

// printProgress prints one line whenever the best fitness visibly improves,
// using the minimal precision needed to show the change — the teacher's
// FormatMinimalPrecision, generalized here from playlist fitness to
// schedule fitness.
func printProgress(progress <-chan ga.Update, done chan<- struct{}) {
	defer close(done)
	prev := 0.0
	first := true
	for u := range progress {
		if first || hasFitnessImproved(prev, u.BestFitness) {
			tag := ""
			if u.DiversityBoost {
				tag = " [diversity boost]"
			}
			fmt.Printf("gen %4d  best=%s  avg=%.2f  mutation=%.3f%s\n",
				u.Generation, FormatMinimalPrecision(prev, u.BestFitness), u.AvgFitness, u.MutationRate, tag)
			prev = u.BestFitness
			first = false
		}
	}
}

// hasFitnessImproved reports whether curr is a meaningfully larger fitness
// than prev, guarding against float noise from accumulated soft penalties.
func hasFitnessImproved(prev, curr float64) bool {
	const epsilon = 1e-9
	return curr > prev+epsilon
}

func printSummary(result ga.Result, elapsed time.Duration) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "fitness:\t%.4f\n", result.Fitness)
	fmt.Fprintf(w, "hard violations:\troom=%d\tinstructor=%d\tstudent=%d\tcapacity=%d\n",
		result.Report.Hard.Room, result.Report.Hard.Instructor, result.Report.Hard.Student, result.Report.Hard.Capacity)
	fmt.Fprintf(w, "soft penalty:\tgaps=%.2f\tgroup=%.2f\n", result.Report.Soft.Gaps, result.Report.Soft.Group)
	fmt.Fprintf(w, "generations run:\t%d\n", len(result.History.BestPerGen)-1)
	fmt.Fprintf(w, "improvement:\t%.2f\n", result.History.Improvement())
	fmt.Fprintf(w, "elapsed:\t%s\n", elapsed.Round(time.Millisecond))
	w.Flush()
}

func writeResult(path string, result ga.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("cli: write %s: %w", path, err)
	}
	return nil
}
