// ABOUTME: Config type, TOML persistence, validation and defaults
// ABOUTME: Grounded on the teacher's config/config.go (BurntSushi/toml) and root config.go, consolidated into one definition

package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the engine's external tuning surface: population and generation
// sizes, mutation/crossover rates, elitism and tournament sizes, the hard
// and soft constraint weights, stagnation/early-stop thresholds, and the
// RNG seed.
type Config struct {
	PopulationSize   int     `toml:"population_size"`
	Generations      int     `toml:"generations"`
	MutationRate     float64 `toml:"mutation_rate"`
	CrossoverRate    float64 `toml:"crossover_rate"`
	ElitismSize      int     `toml:"elitism_size"`
	TournamentSize   int     `toml:"tournament_size"`
	HardWeight       float64 `toml:"hard_weight"`
	SoftWeight       float64 `toml:"soft_weight"`
	StagnationThresh int     `toml:"stagnation_threshold"`
	EarlyStopFrac    float64 `toml:"early_stop_fraction"`
	Seed             int64   `toml:"seed"`
	StudentHardCheck bool    `toml:"enable_student_hard_check"`
}

// Default returns the engine's out-of-the-box tuning. Seed is 0, meaning
// "derive one from the clock" — callers that want determinism set it
// explicitly.
func Default() Config {
	return Config{
		PopulationSize:   100,
		Generations:      200,
		MutationRate:     0.20,
		CrossoverRate:    0.80,
		ElitismSize:      10,
		TournamentSize:   5,
		HardWeight:       1000,
		SoftWeight:       1,
		StagnationThresh: 30,
		EarlyStopFrac:    0.90,
		Seed:             0,
		StudentHardCheck: false,
	}
}

// Validate rejects rates outside [0,1], non-positive sizes, and elitism >=
// population; all fatal at init rather than caught mid-run.
func Validate(c Config) error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("population_size must be positive, got %d: %w", c.PopulationSize, ErrInvalidConfig)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d: %w", c.Generations, ErrInvalidConfig)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("tournament_size must be positive, got %d: %w", c.TournamentSize, ErrInvalidConfig)
	}
	if c.ElitismSize < 0 {
		return fmt.Errorf("elitism_size must not be negative, got %d: %w", c.ElitismSize, ErrInvalidConfig)
	}
	if c.ElitismSize >= c.PopulationSize {
		return fmt.Errorf("elitism_size (%d) must be less than population_size (%d): %w", c.ElitismSize, c.PopulationSize, ErrInvalidConfig)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation_rate must be in [0,1], got %v: %w", c.MutationRate, ErrInvalidConfig)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover_rate must be in [0,1], got %v: %w", c.CrossoverRate, ErrInvalidConfig)
	}
	if c.EarlyStopFrac < 0 || c.EarlyStopFrac > 1 {
		return fmt.Errorf("early_stop_fraction must be in [0,1], got %v: %w", c.EarlyStopFrac, ErrInvalidConfig)
	}
	if c.StagnationThresh <= 0 {
		return fmt.Errorf("stagnation_threshold must be positive, got %d: %w", c.StagnationThresh, ErrInvalidConfig)
	}
	return nil
}

// Load reads path as TOML over the defaults, so a partial file only
// overrides the fields it mentions. A missing file returns defaults with no
// error, matching the teacher's LoadConfig; a present-but-malformed file is
// a wrapped error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
