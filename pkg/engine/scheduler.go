package engine

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"stundenplan/pkg/model"
)

type Outcome int

const (
	// Converged: the returned timetable has zero hard violations.
	Converged Outcome = iota
	// Exhausted: the iteration budget was spent with residual hard
	// violations; the result carries the best-effort timetable and the
	// enumerated violations so the caller can decide whether to accept it.
	Exhausted
	// Cancelled: the caller cancelled the search; the best complete
	// timetable seen so far is returned. Cancellation is not a failure.
	Cancelled
)

var outcomeNames = map[Outcome]string{
	Converged: "converged",
	Exhausted: "exhausted",
	Cancelled: "cancelled",
}

func (outcome Outcome) String() string {
	return outcomeNames[outcome]
}

// Result is the terminal outcome of a generation run. The timetable is
// always complete and must be treated as immutable.
type Result struct {
	Timetable   *model.Timetable
	Outcome     Outcome
	Cost        float64
	Violations  []Violation
	Iterations  int
	Evaluations int
	Duration    time.Duration
}

type Scheduler interface {
	// Generate runs the full search on the roster: pool seeding, (1+1)-ES
	// refinement and simulated-annealing stagnation escape. It blocks until
	// an outcome is reached and only returns an error when the roster is
	// structurally infeasible or the input is inconsistent.
	Generate(ctx context.Context, roster *model.Roster) (*Result, error)
}

func NewScheduler(config Config, logger *zap.Logger) (Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &hybridScheduler{config: config, logger: logger}, nil
}

// Generate is the package-level entry point for callers without a scheduler
// of their own; the roster uses the default 5x8 week.
func Generate(ctx context.Context, classes []model.Class, teachers []model.Teacher, config Config) (*Result, error) {
	roster, err := model.NewRoster(classes, teachers, model.DefaultDays, model.DefaultPeriodsPerDay)
	if err != nil {
		return nil, err
	}
	scheduler, err := NewScheduler(config, nil)
	if err != nil {
		return nil, err
	}
	return scheduler.Generate(ctx, roster)
}

type hybridScheduler struct {
	config Config
	logger *zap.Logger
}

func (scheduler *hybridScheduler) Generate(ctx context.Context, roster *model.Roster) (*Result, error) {
	start := time.Now()
	config := scheduler.config

	// Fail fast on structural impossibilities; the search loop is never
	// entered for an infeasible roster.
	if err := validateRoster(roster, scheduler.logger); err != nil {
		return nil, err
	}

	evaluator := newCostEvaluator(roster)
	seeder := newSeeder(roster)

	best, bestCost, evaluations := scheduler.seedPool(seeder, evaluator)
	scheduler.logger.Debug("seeding complete",
		zap.Int("pool", config.InitialPoolSize),
		zap.Float64("cost", bestCost))

	finish := func(outcome Outcome, iterations int) *Result {
		violations := evaluator.Violations(best)
		if outcome != Cancelled && len(violations) > 0 {
			outcome = Exhausted
		}
		scheduler.logger.Debug("search finished",
			zap.Stringer("outcome", outcome),
			zap.Float64("cost", bestCost),
			zap.Int("iterations", iterations),
			zap.Int("violations", len(violations)))
		return &Result{
			Timetable:   best,
			Outcome:     outcome,
			Cost:        bestCost,
			Violations:  violations,
			Iterations:  iterations,
			Evaluations: evaluations,
			Duration:    time.Since(start),
		}
	}

	if ctx.Err() != nil {
		return finish(Cancelled, 0), nil
	}

	// Refinement: (1+1)-ES with elitist acceptance. The mutation rng is
	// derived from the root seed past the pool's streams, so refinement
	// stays reproducible regardless of seeding parallelism.
	rng := rand.New(rand.NewSource(config.Seed + int64(config.InitialPoolSize)))
	sigma := config.Sigma
	stagnant := 0
	annealed := false
	iteration := 0

	for ; iteration < config.MaxESIterations; iteration++ {
		if ctx.Err() != nil {
			return finish(Cancelled, iteration), nil
		}
		if bestCost < costEpsilon {
			break
		}

		offspring := seeder.mutate(best, sigma, rng)
		cost := evaluator.Evaluate(offspring)
		evaluations++

		improved := cost < bestCost
		if cost <= bestCost {
			best, bestCost = offspring, cost
		}
		if config.Progress != nil {
			config.Progress(iteration, bestCost)
		}

		sigma = math.Max(config.MinSigma, sigma*config.SigmaDecay)

		if improved {
			stagnant = 0
			annealed = false
			continue
		}

		if stagnant++; stagnant < config.MaxStagnantIterations {
			continue
		}
		stagnant = 0

		if annealed {
			// Annealing has already been spent since the last
			// improvement: re-diversify the ES instead.
			scheduler.logger.Debug("stagnation persists, boosting sigma",
				zap.Int("iteration", iteration))
			sigma = config.Sigma
			annealed = false
			continue
		}

		scheduler.logger.Debug("stagnation, entering annealing",
			zap.Int("iteration", iteration),
			zap.Float64("cost", bestCost))
		var annealEvaluations int
		var cancelled bool
		best, bestCost, annealEvaluations, cancelled = scheduler.anneal(ctx, seeder, evaluator, best, bestCost, sigma, rng)
		evaluations += annealEvaluations
		annealed = true
		if cancelled {
			return finish(Cancelled, iteration), nil
		}
	}

	return finish(Converged, iteration), nil
}

// seedPool builds the initial candidate pool in parallel. Each candidate owns
// an independently seeded random stream derived from the root seed, so the
// pool is reproducible; the minimum-cost candidate wins, ties resolved toward
// the lowest index.
func (scheduler *hybridScheduler) seedPool(seeder *seeder, evaluator Evaluator) (*model.Timetable, float64, int) {
	pool := make([]*model.Timetable, scheduler.config.InitialPoolSize)

	var wg sync.WaitGroup
	for i := range pool {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(scheduler.config.Seed + int64(i)))
			pool[i] = seeder.seed(rng)
		}(i)
	}
	wg.Wait()

	best, bestCost := pool[0], evaluator.Evaluate(pool[0])
	for _, candidate := range pool[1:] {
		if cost := evaluator.Evaluate(candidate); cost < bestCost {
			best, bestCost = candidate, cost
		}
	}
	return best, bestCost, len(pool)
}

// anneal runs simulated annealing seeded from the current best: worsening
// neighbors are accepted with probability exp(-delta/temperature) to escape
// the local optimum, while the global best is tracked independently of the
// accepted state, so the returned solution is never worse than the input.
func (scheduler *hybridScheduler) anneal(
	ctx context.Context,
	seeder *seeder,
	evaluator Evaluator,
	best *model.Timetable,
	bestCost float64,
	sigma float64,
	rng *rand.Rand,
) (*model.Timetable, float64, int, bool) {
	config := scheduler.config
	current, currentCost := best, bestCost
	evaluations := 0

	for temperature := config.Temperature; temperature >= config.MinTemperature; temperature *= config.CoolingRate {
		if ctx.Err() != nil {
			return best, bestCost, evaluations, true
		}

		neighbor := seeder.mutate(current, sigma, rng)
		cost := evaluator.Evaluate(neighbor)
		evaluations++

		delta := cost - currentCost
		if delta <= 0 || rng.Float64() < math.Exp(-delta/temperature) {
			current, currentCost = neighbor, cost
			if currentCost < bestCost {
				best, bestCost = current, currentCost
			}
		}
	}

	return best, bestCost, evaluations, false
}
