package engine

import "fmt"

// Config holds the search parameters of the scheduler. All sizes and budgets
// must be strictly positive; decay and cooling rates must lie in (0, 1).
type Config struct {
	// InitialPoolSize is the number of randomized candidates generated
	// before refinement starts.
	InitialPoolSize int

	// MaxESIterations bounds the (1+1)-evolution phase.
	MaxESIterations int

	// Sigma is the initial mutation strength: the fraction of occurrence
	// placements resampled per offspring. It decays by SigmaDecay each
	// iteration and is floored at MinSigma.
	Sigma      float64
	SigmaDecay float64
	MinSigma   float64

	// MaxStagnantIterations is the number of consecutive non-improving
	// iterations tolerated before the annealing escape kicks in.
	MaxStagnantIterations int

	// Temperature, CoolingRate and MinTemperature drive the
	// simulated-annealing acceptance schedule.
	Temperature    float64
	CoolingRate    float64
	MinTemperature float64

	// Seed is the root seed of the search. Every derived random stream is
	// seeded deterministically from it, so identical inputs and seed
	// produce a bit-identical timetable.
	Seed int64

	// Progress, when set, is invoked after every refinement iteration with
	// the tracked global-best cost. It must not retain the arguments.
	Progress func(iteration int, bestCost float64) `mapstructure:"-"`
}

func DefaultConfig() Config {
	return Config{
		InitialPoolSize:       16,
		MaxESIterations:       2000,
		Sigma:                 0.2,
		SigmaDecay:            0.995,
		MinSigma:              0.01,
		MaxStagnantIterations: 100,
		Temperature:           10,
		CoolingRate:           0.9,
		MinTemperature:        0.01,
		Seed:                  1,
	}
}

func (config Config) Validate() error {
	if config.InitialPoolSize < 1 {
		return fmt.Errorf("initial pool size must be positive: %v", config.InitialPoolSize)
	}
	if config.MaxESIterations < 1 {
		return fmt.Errorf("max ES iterations must be positive: %v", config.MaxESIterations)
	}
	if config.Sigma <= 0 {
		return fmt.Errorf("sigma must be positive: %v", config.Sigma)
	}
	if config.SigmaDecay <= 0 || config.SigmaDecay >= 1 {
		return fmt.Errorf("sigma decay must be in (0, 1): %v", config.SigmaDecay)
	}
	if config.MinSigma <= 0 || config.MinSigma > config.Sigma {
		return fmt.Errorf("min sigma must be in (0, sigma]: %v", config.MinSigma)
	}
	if config.MaxStagnantIterations < 1 {
		return fmt.Errorf("max stagnant iterations must be positive: %v", config.MaxStagnantIterations)
	}
	if config.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive: %v", config.Temperature)
	}
	if config.CoolingRate <= 0 || config.CoolingRate >= 1 {
		return fmt.Errorf("cooling rate must be in (0, 1): %v", config.CoolingRate)
	}
	if config.MinTemperature <= 0 || config.MinTemperature > config.Temperature {
		return fmt.Errorf("min temperature must be in (0, temperature]: %v", config.MinTemperature)
	}
	return nil
}
