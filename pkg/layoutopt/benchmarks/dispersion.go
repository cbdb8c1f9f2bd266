// Package benchmarks provides small layout problems used to test the
// correctness of the optimizer. Their objective functions are registered
// under stable names so problems built from them round-trip through
// persistence.
package benchmarks

import (
	"math"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/region"
)

const (
	DispersionName = "Dispersion"

	ObjMinSeparation = "dispersion/min-separation"
	ObjCompactness   = "dispersion/compactness"
)

func init() {
	framework.MustRegisterObjective(ObjMinSeparation, MinSeparation)
	framework.MustRegisterObjective(ObjCompactness, Compactness)
}

func distance(a, b framework.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// MinSeparation is the smallest pairwise distance in the layout; maximizing
// it spreads points apart.
func MinSeparation(ind framework.Individual) (float64, error) {
	if len(ind) < 2 {
		return 0, nil
	}
	min := math.Inf(1)
	for i := 0; i < len(ind); i++ {
		for j := i + 1; j < len(ind); j++ {
			if d := distance(ind[i], ind[j]); d < min {
				min = d
			}
		}
	}
	return min, nil
}

// Compactness is the negated mean distance to the layout centroid;
// maximizing it pulls points together. It conflicts with MinSeparation by
// construction.
func Compactness(ind framework.Individual) (float64, error) {
	if len(ind) == 0 {
		return 0, nil
	}
	var cx, cy float64
	for _, p := range ind {
		cx += p.X
		cy += p.Y
	}
	centroid := framework.Point{X: cx / float64(len(ind)), Y: cy / float64(len(ind))}
	sum := 0.0
	for _, p := range ind {
		sum += distance(p, centroid)
	}
	return -sum / float64(len(ind)), nil
}

// Dispersion is a fixed-cardinality benchmark on the unit square: spread the
// points apart while keeping the layout compact.
type Dispersion struct {
	numPoints int
}

func NewDispersion(numPoints int) *Dispersion {
	return &Dispersion{numPoints: numPoints}
}

func (d *Dispersion) Name() string {
	return DispersionName
}

// Config returns the problem configuration for this benchmark.
func (d *Dispersion) Config() problem.Config {
	return problem.Config{
		Name:       DispersionName,
		Objectives: []string{ObjMinSeparation, ObjCompactness},
		Region:     region.UnitSquare(),
		Mode:       problem.FixedCardinality,
		NumPoints:  d.numPoints,
	}
}

// TrueParetoFront is unknown for this problem.
func (d *Dispersion) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}
