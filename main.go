// ABOUTME: CLI entry point: flag parsing, profiling setup, routes to the plain CLI or the Bubble Tea TUI
// ABOUTME: Grounded on the teacher's main.go flag/profile wiring

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/aperazzo/timetable-ga/config"
	"github.com/aperazzo/timetable-ga/problem"
	"github.com/aperazzo/timetable-ga/tui"
)

func main() {
	var opts RunOptions
	var cpuprofile, memprofile string

	flag.StringVar(&opts.ConfigPath, "config", "config.toml", "path to TOML config file")
	flag.StringVar(&opts.OutPath, "out", "", "write the Result as JSON to this path instead of only printing a summary")
	flag.Int64Var(&opts.Seed, "seed", 0, "RNG seed (0 = derive from the clock)")
	flag.IntVar(&opts.Generations, "generations", 0, "override config generations (0 = use config)")
	flag.IntVar(&opts.Population, "population", 0, "override config population_size (0 = use config)")
	flag.BoolVar(&opts.Debug, "debug", false, "write a debug.log with the load report and config-reload events")
	flag.BoolVar(&opts.Visual, "visual", false, "run the interactive TUI dashboard instead of plain CLI output")
	flag.StringVar(&cpuprofile, "cpuprofile", "", "write a CPU profile to this path")
	flag.StringVar(&memprofile, "memprofile", "", "write a heap profile to this path")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: timetable-ga [flags] <problem.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	opts.ProblemPath = flag.Arg(0)

	if cpuprofile != "" {
		stop, err := setupCPUProfile(cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cpuprofile:", err)
			os.Exit(1)
		}
		defer stop()
	}

	var err error
	if opts.Visual {
		err = runVisual(opts)
	} else {
		err = RunCLI(opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if memprofile != "" {
		if err := writeMemoryProfile(memprofile); err != nil {
			fmt.Fprintln(os.Stderr, "memprofile:", err)
			os.Exit(1)
		}
	}
}

func runVisual(opts RunOptions) error {
	raw, err := loadDemoProblem(opts.ProblemPath)
	if err != nil {
		return err
	}
	prob, _, err := problem.Load(raw)
	if err != nil {
		return fmt.Errorf("visual: %w", err)
	}
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
		if stop, err := config.WatchFile(opts.ConfigPath, shared, nil); err == nil {
			defer stop()
		}
	}
	return tui.Run(prob, shared)
}

func setupCPUProfile(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func writeMemoryProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
