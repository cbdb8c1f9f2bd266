package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/eval"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/history"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
)

const (
	Name = "NSGA-II"

	// DefaultTournamentSize is used when the config leaves TournamentSize
	// unset.
	DefaultTournamentSize = 3
)

var ErrInvalidConfig = errors.New("invalid NSGA-II configuration")

// NSGA2Config holds the run parameters for the NSGA-II algorithm.
type NSGA2Config struct {
	PopulationSize       int
	MaxGenerations       int
	CrossoverProbability float64
	MutationProbability  float64
	TournamentSize       int
	Seed                 uint64
	// Workers > 1 enables parallel objective evaluation. Evaluation never
	// consumes the RNG stream, so results are identical either way.
	Workers int
}

// Validate rejects configurations the optimizer must never start with.
func (c NSGA2Config) Validate() error {
	if c.PopulationSize < 2 || c.PopulationSize%2 != 0 {
		return fmt.Errorf("%w: population size must be even and positive, got %d", ErrInvalidConfig, c.PopulationSize)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("%w: generation count must be non-negative, got %d", ErrInvalidConfig, c.MaxGenerations)
	}
	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		return fmt.Errorf("%w: crossover probability %v outside [0,1]", ErrInvalidConfig, c.CrossoverProbability)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return fmt.Errorf("%w: mutation probability %v outside [0,1]", ErrInvalidConfig, c.MutationProbability)
	}
	if c.TournamentSize < 0 {
		return fmt.Errorf("%w: tournament size must be non-negative (0 selects the default of %d), got %d", ErrInvalidConfig, DefaultTournamentSize, c.TournamentSize)
	}
	return nil
}

// NSGAII runs the elitist generational loop. It owns the single seeded RNG
// stream; every randomized phase (sampling, selection, variation) draws from
// it in a fixed order, so two runs with the same seed and problem produce
// identical population histories.
type NSGAII struct {
	cfg       NSGA2Config
	problem   *problem.LayoutProblem
	evaluator eval.BatchEvaluator
	crossover Crossover
	mutation  Mutation
	src       *rand.PCG
	rng       *rand.Rand
}

// NewNSGAII creates a new instance of NSGA-II with the given parameters.
func NewNSGAII(cfg NSGA2Config, p *problem.LayoutProblem) (*NSGAII, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TournamentSize == 0 {
		cfg.TournamentSize = DefaultTournamentSize
	}

	var evaluator eval.BatchEvaluator = eval.Sequential{}
	if cfg.Workers > 1 {
		evaluator = eval.Parallel{Workers: cfg.Workers}
	}

	cx, mut := OperatorsFor(p, cfg.CrossoverProbability, cfg.MutationProbability)
	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	return &NSGAII{
		cfg:       cfg,
		problem:   p,
		evaluator: evaluator,
		crossover: cx,
		mutation:  mut,
		src:       src,
		rng:       rand.New(src),
	}, nil
}

// Run executes the configured number of generations and returns the recorded
// history. Evaluation errors abort the run immediately with no partial
// generation.
func (n *NSGAII) Run(ctx context.Context) (*history.Run, error) {
	logger := klog.FromContext(ctx)
	logger.V(5).Info("starting run",
		"algorithm", Name,
		"problem", n.problem.Name(),
		"populationSize", n.cfg.PopulationSize,
		"generations", n.cfg.MaxGenerations,
		"seed", n.cfg.Seed)

	pop, err := n.problem.Sample(n.rng, n.cfg.PopulationSize)
	if err != nil {
		return nil, err
	}
	om, err := n.evaluator.EvaluateBatch(ctx, n.problem, pop)
	if err != nil {
		return nil, fmt.Errorf("initial evaluation: %w", err)
	}

	rec := history.NewRun(n.problem.Name(), n.problem.ObjectiveNames(), n.problem.ConstraintNames(), n.cfg.Seed)
	rec.Append(pop, om)
	evaluations := len(pop)

	for gen := 0; gen < n.cfg.MaxGenerations; gen++ {
		ranks, distances := rankAndCrowd(om)

		offspring := make(framework.Population, 0, n.cfg.PopulationSize)
		for i := 0; i < n.cfg.PopulationSize; i += 2 {
			p1 := TournamentSelect(n.rng, ranks, distances, n.cfg.TournamentSize)
			p2 := TournamentSelect(n.rng, ranks, distances, n.cfg.TournamentSize)

			c1, c2 := n.crossover.Cross(n.rng, pop[p1], pop[p2])
			c1 = n.mutation.Mutate(n.rng, c1)
			c2 = n.mutation.Mutate(n.rng, c2)
			offspring = append(offspring, c1, c2)
		}

		offOM, err := n.evaluator.EvaluateBatch(ctx, n.problem, offspring)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}
		evaluations += len(offspring)

		combinedPop := framework.MergePopulations(pop, offspring)
		combinedOM, err := framework.MergeObjectives(om, offOM)
		if err != nil {
			return nil, err
		}

		pop, om = truncate(combinedPop, combinedOM, n.cfg.PopulationSize)
		rec.Append(pop, om)
		logger.V(5).Info("generation complete", "generation", gen, "populationSize", len(pop))
	}

	if state, err := n.src.MarshalBinary(); err == nil {
		rec.SetRNGState(state)
	}
	logger.V(2).Info(fmt.Sprintf("%s finished %d generations with %s evaluations",
		Name, n.cfg.MaxGenerations, humanize.Comma(int64(evaluations))))
	return rec, nil
}

// rankAndCrowd returns the front rank and crowding distance per individual.
func rankAndCrowd(om *framework.ObjectiveMatrix) ([]int, []float64) {
	n := om.NumIndividuals()
	ranks := make([]int, n)
	distances := make([]float64, n)
	for rank, front := range framework.NonDominatedSort(om) {
		dist := framework.CrowdingDistance(om, front)
		for i, idx := range front {
			ranks[idx] = rank
			distances[idx] = dist[i]
		}
	}
	return ranks, distances
}

// truncate applies elitist replacement: whole fronts are accepted in rank
// order while they fit; the first overflowing front is cut by crowding
// distance, most isolated individuals first.
func truncate(pop framework.Population, om *framework.ObjectiveMatrix, target int) (framework.Population, *framework.ObjectiveMatrix) {
	keep := make([]int, 0, target)
	for _, front := range framework.NonDominatedSort(om) {
		if len(keep)+len(front) <= target {
			keep = append(keep, front...)
			if len(keep) == target {
				break
			}
			continue
		}

		dist := framework.CrowdingDistance(om, front)
		order := make([]int, len(front))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return dist[order[i]] > dist[order[j]]
		})
		for _, i := range order[:target-len(keep)] {
			keep = append(keep, front[i])
		}
		break
	}

	next := make(framework.Population, len(keep))
	for i, idx := range keep {
		next[i] = pop[idx].Clone()
	}
	return next, om.Select(keep)
}
