package algorithms

import (
	"math"
	"math/rand/v2"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/region"
)

// Crossover produces two offspring from two parents. Implementations are
// pure functions of their inputs and the RNG stream, and never alias parent
// storage in the children.
type Crossover interface {
	Cross(rng *rand.Rand, a, b framework.Individual) (framework.Individual, framework.Individual)
}

// Mutation produces a mutated copy of an individual.
type Mutation interface {
	Mutate(rng *rand.Rand, ind framework.Individual) framework.Individual
}

// OperatorsFor builds the crossover and mutation operators matching the
// problem's cardinality mode.
func OperatorsFor(p *problem.LayoutProblem, crossoverProb, mutationProb float64) (Crossover, Mutation) {
	if p.Mode() == problem.VariableCardinality {
		cx := VariableCrossover{
			Rate:      crossoverProb,
			Region:    p.Region(),
			MinPoints: p.MinPoints(),
			MaxPoints: p.MaxPoints(),
		}
		mut := VariableMutation{
			AddProb:     mutationProb,
			RemoveProb:  mutationProb,
			PerturbProb: mutationProb,
			Region:      p.Region(),
			MinPoints:   p.MinPoints(),
			MaxPoints:   p.MaxPoints(),
		}
		return cx, mut
	}
	return FixedCrossover{Rate: crossoverProb, Region: p.Region()},
		FixedMutation{Rate: mutationProb, Region: p.Region()}
}

// sbx blends one coordinate pair with Simulated Binary Crossover, clamped to
// [lo, hi].
func sbx(rng *rand.Rand, a, b, lo, hi float64) (float64, float64) {
	var beta float64
	if rng.Float64() <= 0.5 {
		beta = math.Pow(2*rng.Float64(), 1.0/3.0)
	} else {
		beta = math.Pow(1.0/(2*(1.0-rng.Float64())), 1.0/3.0)
	}
	c1 := 0.5 * ((1+beta)*a + (1-beta)*b)
	c2 := 0.5 * ((1-beta)*a + (1+beta)*b)
	c1 = math.Max(lo, math.Min(hi, c1))
	c2 = math.Max(lo, math.Min(hi, c2))
	return c1, c2
}

// FixedCrossover blends same-length point sets with SBX, point by point.
// Blended points are kept inside the region: clamped to the bounding box and
// resampled if the clamp lands outside a non-convex region.
type FixedCrossover struct {
	Rate   float64
	Region region.Region
}

func (cx FixedCrossover) Cross(rng *rand.Rand, a, b framework.Individual) (framework.Individual, framework.Individual) {
	c1 := a.Clone()
	c2 := b.Clone()
	if rng.Float64() >= cx.Rate {
		return c1, c2
	}

	min, max := cx.Region.BoundingBox()
	for i := range c1 {
		c1[i].X, c2[i].X = sbx(rng, a[i].X, b[i].X, min.X, max.X)
		c1[i].Y, c2[i].Y = sbx(rng, a[i].Y, b[i].Y, min.Y, max.Y)
		if !cx.Region.Contains(c1[i]) {
			c1[i] = cx.Region.RandomPoint(rng)
		}
		if !cx.Region.Contains(c2[i]) {
			c2[i] = cx.Region.RandomPoint(rng)
		}
	}
	return c1, c2
}

// FixedMutation re-samples a random subset of points inside the region,
// each point independently with probability Rate.
type FixedMutation struct {
	Rate   float64
	Region region.Region
}

func (m FixedMutation) Mutate(rng *rand.Rand, ind framework.Individual) framework.Individual {
	out := ind.Clone()
	for i := range out {
		if rng.Float64() < m.Rate {
			out[i] = m.Region.RandomPoint(rng)
		}
	}
	return out
}

// VariableCrossover splits the region's bounding box with a random
// axis-aligned line and exchanges the point subsets on each side, so
// offspring length may differ from either parent. Children are repaired into
// [MinPoints, MaxPoints] before being returned.
type VariableCrossover struct {
	Rate      float64
	Region    region.Region
	MinPoints int
	MaxPoints int
}

func (cx VariableCrossover) Cross(rng *rand.Rand, a, b framework.Individual) (framework.Individual, framework.Individual) {
	if rng.Float64() >= cx.Rate {
		return a.Clone(), b.Clone()
	}

	min, max := cx.Region.BoundingBox()
	vertical := rng.IntN(2) == 0
	var threshold float64
	if vertical {
		threshold = min.X + rng.Float64()*(max.X-min.X)
	} else {
		threshold = min.Y + rng.Float64()*(max.Y-min.Y)
	}
	below := func(p framework.Point) bool {
		if vertical {
			return p.X < threshold
		}
		return p.Y < threshold
	}

	c1 := make(framework.Individual, 0, len(a))
	c2 := make(framework.Individual, 0, len(b))
	for _, p := range a {
		if below(p) {
			c1 = append(c1, p)
		} else {
			c2 = append(c2, p)
		}
	}
	for _, p := range b {
		if below(p) {
			c2 = append(c2, p)
		} else {
			c1 = append(c1, p)
		}
	}

	c1 = clampCardinality(rng, c1, cx.MinPoints, cx.MaxPoints, cx.Region)
	c2 = clampCardinality(rng, c2, cx.MinPoints, cx.MaxPoints, cx.Region)
	return c1, c2
}

// clampCardinality repairs an individual whose length fell outside
// [min, max]: excess points are discarded at random, deficits are filled with
// fresh samples from the region.
func clampCardinality(rng *rand.Rand, ind framework.Individual, min, max int, r region.Region) framework.Individual {
	for len(ind) > max {
		i := rng.IntN(len(ind))
		ind = append(ind[:i], ind[i+1:]...)
	}
	for len(ind) < min {
		ind = append(ind, r.RandomPoint(rng))
	}
	return ind
}

// VariableMutation may add a point, remove a point, and perturb a point, each
// gated by its own probability. Every structural change respects the
// [MinPoints, MaxPoints] bound; changes that would violate it are discarded.
type VariableMutation struct {
	AddProb     float64
	RemoveProb  float64
	PerturbProb float64
	Region      region.Region
	MinPoints   int
	MaxPoints   int
}

// perturbScale sets how far a perturbed point moves, as a fraction of the
// bounding-box span.
const perturbScale = 0.1

func (m VariableMutation) Mutate(rng *rand.Rand, ind framework.Individual) framework.Individual {
	out := ind.Clone()

	if rng.Float64() < m.AddProb && len(out) < m.MaxPoints {
		out = append(out, m.Region.RandomPoint(rng))
	}
	if rng.Float64() < m.RemoveProb && len(out) > m.MinPoints {
		i := rng.IntN(len(out))
		out = append(out[:i], out[i+1:]...)
	}
	if rng.Float64() < m.PerturbProb && len(out) > 0 {
		min, max := m.Region.BoundingBox()
		i := rng.IntN(len(out))
		p := framework.Point{
			X: out[i].X + rng.NormFloat64()*perturbScale*(max.X-min.X),
			Y: out[i].Y + rng.NormFloat64()*perturbScale*(max.Y-min.Y),
		}
		p.X = math.Max(min.X, math.Min(max.X, p.X))
		p.Y = math.Max(min.Y, math.Min(max.Y, p.Y))
		if !m.Region.Contains(p) {
			p = m.Region.RandomPoint(rng)
		}
		out[i] = p
	}
	return out
}
