package benchmarks

import (
	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/region"
)

const (
	CoverageName = "Coverage"

	ObjCoveredArea = "coverage/covered-area"
	ObjEconomy     = "coverage/economy"
	ConSeparation  = "coverage/min-separation"

	// coverageRadius is the service radius of each point.
	coverageRadius = 0.15
	// coverageGrid is the sampling resolution per axis.
	coverageGrid = 20
	// separationFloor is the minimum allowed pairwise distance; closer
	// pairs accrue constraint violation.
	separationFloor = 0.05
)

func init() {
	framework.MustRegisterObjective(ObjCoveredArea, CoveredArea)
	framework.MustRegisterObjective(ObjEconomy, Economy)
	framework.MustRegisterConstraint(ConSeparation, SeparationViolation)
}

// CoveredArea approximates the fraction of the unit square within
// coverageRadius of any point, by sampling a coverageGrid² lattice.
func CoveredArea(ind framework.Individual) (float64, error) {
	if len(ind) == 0 {
		return 0, nil
	}
	covered := 0
	for i := 0; i < coverageGrid; i++ {
		for j := 0; j < coverageGrid; j++ {
			cell := framework.Point{
				X: (float64(i) + 0.5) / coverageGrid,
				Y: (float64(j) + 0.5) / coverageGrid,
			}
			for _, p := range ind {
				if distance(cell, p) <= coverageRadius {
					covered++
					break
				}
			}
		}
	}
	return float64(covered) / (coverageGrid * coverageGrid), nil
}

// Economy rewards layouts with fewer points.
func Economy(ind framework.Individual) (float64, error) {
	return -float64(len(ind)), nil
}

// SeparationViolation sums how far below separationFloor each pairwise
// distance falls. Zero when all points keep their distance.
func SeparationViolation(ind framework.Individual) (float64, error) {
	violation := 0.0
	for i := 0; i < len(ind); i++ {
		for j := i + 1; j < len(ind); j++ {
			if d := distance(ind[i], ind[j]); d < separationFloor {
				violation += separationFloor - d
			}
		}
	}
	return violation, nil
}

// Coverage is a variable-cardinality benchmark on the unit square: cover as
// much area as possible with as few points as possible, keeping points
// separated.
type Coverage struct {
	minPoints int
	maxPoints int
}

func NewCoverage(minPoints, maxPoints int) *Coverage {
	return &Coverage{minPoints: minPoints, maxPoints: maxPoints}
}

func (c *Coverage) Name() string {
	return CoverageName
}

// Config returns the problem configuration for this benchmark.
func (c *Coverage) Config() problem.Config {
	return problem.Config{
		Name:          CoverageName,
		Objectives:    []string{ObjCoveredArea, ObjEconomy},
		Constraints:   []string{ConSeparation},
		PenaltyWeight: 1.0,
		Region:        region.UnitSquare(),
		Mode:          problem.VariableCardinality,
		MinPoints:     c.minPoints,
		MaxPoints:     c.maxPoints,
	}
}

// TrueParetoFront is unknown for this problem.
func (c *Coverage) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}
