package benchmarks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/benchmarks"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
)

func TestMinSeparation(t *testing.T) {
	v, err := benchmarks.MinSeparation(framework.Individual{
		{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 10, Y: 10},
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-12)

	v, err = benchmarks.MinSeparation(framework.Individual{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestCompactness(t *testing.T) {
	// Two points 2 apart: both are distance 1 from the centroid.
	v, err := benchmarks.Compactness(framework.Individual{
		{X: 0, Y: 0}, {X: 2, Y: 0},
	})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v, 1e-12)
}

func TestCoveredArea(t *testing.T) {
	v, err := benchmarks.CoveredArea(framework.Individual{})
	require.NoError(t, err)
	assert.Zero(t, v)

	center, err := benchmarks.CoveredArea(framework.Individual{{X: 0.5, Y: 0.5}})
	require.NoError(t, err)
	assert.Greater(t, center, 0.0)
	assert.Less(t, center, 1.0)

	corner, err := benchmarks.CoveredArea(framework.Individual{{X: 0, Y: 0}})
	require.NoError(t, err)
	assert.Less(t, corner, center, "a corner point covers less than a centered one")
}

func TestEconomy(t *testing.T) {
	v, err := benchmarks.Economy(make(framework.Individual, 7))
	require.NoError(t, err)
	assert.Equal(t, -7.0, v)
}

func TestSeparationViolation(t *testing.T) {
	v, err := benchmarks.SeparationViolation(framework.Individual{
		{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.9},
	})
	require.NoError(t, err)
	assert.Zero(t, v, "distant points violate nothing")

	v, err = benchmarks.SeparationViolation(framework.Individual{
		{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5},
	})
	require.NoError(t, err)
	assert.Greater(t, v, 0.0, "coincident points violate the separation floor")
}

func TestBenchmarkConfigsBuild(t *testing.T) {
	for _, bench := range []benchmarks.Problem{
		benchmarks.NewDispersion(5),
		benchmarks.NewCoverage(2, 10),
	} {
		t.Run(bench.Name(), func(t *testing.T) {
			_, err := problem.New(bench.Config())
			require.NoError(t, err)
			// Neither front has a closed form; nil tells the plot path
			// to skip the reference series.
			assert.Nil(t, bench.TrueParetoFront(100))
		})
	}
}
