// Package problem defines the layout problem contract: which objectives and
// constraints to optimize, the region points live in, and the cardinality
// policy governing how many points an individual may hold.
package problem

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/region"
)

var (
	ErrNoObjectives     = errors.New("problem needs at least one objective")
	ErrNilRegion        = errors.New("problem needs a region")
	ErrDegenerateRegion = errors.New("region has zero area")
	ErrBadCardinality   = errors.New("invalid point-count bounds")
	ErrOddPopulation    = errors.New("population size must be even and positive")
)

// CardinalityMode selects between fixed-size and variable-size individuals.
type CardinalityMode int

const (
	// FixedCardinality keeps every individual at exactly NumPoints points.
	FixedCardinality CardinalityMode = iota
	// VariableCardinality lets individuals hold between MinPoints and
	// MaxPoints points inclusive.
	VariableCardinality
)

func (m CardinalityMode) String() string {
	switch m {
	case FixedCardinality:
		return "fixed"
	case VariableCardinality:
		return "variable"
	default:
		return fmt.Sprintf("CardinalityMode(%d)", int(m))
	}
}

// Config describes a layout problem. Objectives and constraints are referred
// to by their registered names so a problem survives serialization.
type Config struct {
	Name        string
	Objectives  []string
	Constraints []string
	// PenaltyWeight scales the summed constraint violation subtracted from
	// every objective of a violating individual.
	PenaltyWeight float64
	Region        region.Region
	Mode          CardinalityMode
	// NumPoints is the genome length in FixedCardinality mode.
	NumPoints int
	// MinPoints and MaxPoints bound the genome length in
	// VariableCardinality mode.
	MinPoints int
	MaxPoints int
}

// LayoutProblem owns the resolved objective and constraint functions, the
// region bounds and the genome-length policy.
type LayoutProblem struct {
	cfg         Config
	objectives  []framework.ObjectiveFunc
	constraints []framework.ConstraintFunc
}

// New resolves the named functions and validates the configuration. All
// configuration errors surface here; the optimizer never starts with an
// invalid problem.
func New(cfg Config) (*LayoutProblem, error) {
	if len(cfg.Objectives) == 0 {
		return nil, ErrNoObjectives
	}
	if cfg.Region == nil {
		return nil, ErrNilRegion
	}
	if cfg.Region.Area() <= 0 {
		return nil, ErrDegenerateRegion
	}
	switch cfg.Mode {
	case FixedCardinality:
		if cfg.NumPoints < 1 {
			return nil, fmt.Errorf("%w: fixed mode needs NumPoints >= 1, got %d", ErrBadCardinality, cfg.NumPoints)
		}
	case VariableCardinality:
		if cfg.MinPoints < 1 || cfg.MinPoints > cfg.MaxPoints {
			return nil, fmt.Errorf("%w: need 1 <= MinPoints <= MaxPoints, got [%d, %d]",
				ErrBadCardinality, cfg.MinPoints, cfg.MaxPoints)
		}
	default:
		return nil, fmt.Errorf("unknown cardinality mode %v", cfg.Mode)
	}

	p := &LayoutProblem{cfg: cfg}
	for _, name := range cfg.Objectives {
		fn, err := framework.LookupObjective(name)
		if err != nil {
			return nil, err
		}
		p.objectives = append(p.objectives, fn)
	}
	for _, name := range cfg.Constraints {
		fn, err := framework.LookupConstraint(name)
		if err != nil {
			return nil, err
		}
		p.constraints = append(p.constraints, fn)
	}
	return p, nil
}

func (p *LayoutProblem) Name() string          { return p.cfg.Name }
func (p *LayoutProblem) Mode() CardinalityMode { return p.cfg.Mode }
func (p *LayoutProblem) Region() region.Region { return p.cfg.Region }
func (p *LayoutProblem) NumObjectives() int    { return len(p.objectives) }
func (p *LayoutProblem) PenaltyWeight() float64 {
	return p.cfg.PenaltyWeight
}

// ObjectiveNames returns the registered names backing this problem, in
// objective-row order.
func (p *LayoutProblem) ObjectiveNames() []string {
	return append([]string(nil), p.cfg.Objectives...)
}

// ConstraintNames returns the registered constraint names.
func (p *LayoutProblem) ConstraintNames() []string {
	return append([]string(nil), p.cfg.Constraints...)
}

// MinPoints returns the smallest legal genome length.
func (p *LayoutProblem) MinPoints() int {
	if p.cfg.Mode == FixedCardinality {
		return p.cfg.NumPoints
	}
	return p.cfg.MinPoints
}

// MaxPoints returns the largest legal genome length.
func (p *LayoutProblem) MaxPoints() int {
	if p.cfg.Mode == FixedCardinality {
		return p.cfg.NumPoints
	}
	return p.cfg.MaxPoints
}

// Sample produces popSize individuals inside the region, drawing lengths
// uniformly from the legal range in variable mode.
func (p *LayoutProblem) Sample(rng *rand.Rand, popSize int) (framework.Population, error) {
	if popSize < 2 || popSize%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddPopulation, popSize)
	}
	pop := make(framework.Population, popSize)
	for i := range pop {
		n := p.MinPoints()
		if span := p.MaxPoints() - p.MinPoints(); span > 0 {
			n += rng.IntN(span + 1)
		}
		ind := make(framework.Individual, n)
		for j := range ind {
			ind[j] = p.cfg.Region.RandomPoint(rng)
		}
		pop[i] = ind
	}
	return pop, nil
}

// EvaluateIndividual computes the penalized objective-space point for one
// individual: every objective value, minus the weighted sum of constraint
// violations. A failing objective or constraint aborts with its error.
func (p *LayoutProblem) EvaluateIndividual(ind framework.Individual) (framework.ObjectiveSpacePoint, error) {
	col := make(framework.ObjectiveSpacePoint, len(p.objectives))
	for i, fn := range p.objectives {
		v, err := fn(ind)
		if err != nil {
			return nil, fmt.Errorf("objective %q: %w", p.cfg.Objectives[i], err)
		}
		col[i] = v
	}
	if len(p.constraints) > 0 {
		violation := 0.0
		for i, fn := range p.constraints {
			v, err := fn(ind)
			if err != nil {
				return nil, fmt.Errorf("constraint %q: %w", p.cfg.Constraints[i], err)
			}
			violation += v
		}
		// The summed violation degrades all objectives uniformly rather
		// than being tracked separately.
		penalty := p.cfg.PenaltyWeight * violation
		for i := range col {
			col[i] -= penalty
		}
	}
	return col, nil
}

// Evaluate applies every objective to every individual, producing one row per
// objective. The first failing function aborts the whole batch with no
// partial results.
func (p *LayoutProblem) Evaluate(pop framework.Population) (*framework.ObjectiveMatrix, error) {
	om := framework.NewObjectiveMatrix(len(p.objectives), len(pop))
	for i, ind := range pop {
		col, err := p.EvaluateIndividual(ind)
		if err != nil {
			return nil, fmt.Errorf("individual %d: %w", i, err)
		}
		om.SetColumn(i, col)
	}
	return om, nil
}
