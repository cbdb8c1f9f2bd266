package problem_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/region"
)

var errBrokenObjective = errors.New("broken objective")

func init() {
	framework.MustRegisterObjective("problemtest/mean-x", func(ind framework.Individual) (float64, error) {
		if len(ind) == 0 {
			return 0, nil
		}
		sum := 0.0
		for _, p := range ind {
			sum += p.X
		}
		return sum / float64(len(ind)), nil
	})
	framework.MustRegisterObjective("problemtest/count", func(ind framework.Individual) (float64, error) {
		return float64(len(ind)), nil
	})
	framework.MustRegisterObjective("problemtest/fail", func(framework.Individual) (float64, error) {
		return 0, errBrokenObjective
	})
	framework.MustRegisterConstraint("problemtest/always-two", func(framework.Individual) (float64, error) {
		return 2, nil
	})
	framework.MustRegisterConstraint("problemtest/fail", func(framework.Individual) (float64, error) {
		return 0, errBrokenObjective
	})
}

func fixedConfig() problem.Config {
	return problem.Config{
		Name:       "test-fixed",
		Objectives: []string{"problemtest/mean-x", "problemtest/count"},
		Region:     region.UnitSquare(),
		Mode:       problem.FixedCardinality,
		NumPoints:  4,
	}
}

func variableConfig() problem.Config {
	return problem.Config{
		Name:       "test-variable",
		Objectives: []string{"problemtest/count"},
		Region:     region.UnitSquare(),
		Mode:       problem.VariableCardinality,
		MinPoints:  2,
		MaxPoints:  6,
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*problem.Config)
		wantErr error
	}{
		{
			name:    "no objectives",
			mutate:  func(c *problem.Config) { c.Objectives = nil },
			wantErr: problem.ErrNoObjectives,
		},
		{
			name:    "nil region",
			mutate:  func(c *problem.Config) { c.Region = nil },
			wantErr: problem.ErrNilRegion,
		},
		{
			name:    "degenerate region",
			mutate:  func(c *problem.Config) { c.Region = region.Rect{} },
			wantErr: problem.ErrDegenerateRegion,
		},
		{
			name:    "fixed without points",
			mutate:  func(c *problem.Config) { c.NumPoints = 0 },
			wantErr: problem.ErrBadCardinality,
		},
		{
			name: "min above max",
			mutate: func(c *problem.Config) {
				c.Mode = problem.VariableCardinality
				c.MinPoints = 5
				c.MaxPoints = 3
			},
			wantErr: problem.ErrBadCardinality,
		},
		{
			name: "min below one",
			mutate: func(c *problem.Config) {
				c.Mode = problem.VariableCardinality
				c.MinPoints = 0
				c.MaxPoints = 3
			},
			wantErr: problem.ErrBadCardinality,
		},
		{
			name:    "unregistered objective",
			mutate:  func(c *problem.Config) { c.Objectives = []string{"problemtest/nope"} },
			wantErr: framework.ErrFuncNotFound,
		},
		{
			name:    "unregistered constraint",
			mutate:  func(c *problem.Config) { c.Constraints = []string{"problemtest/nope"} },
			wantErr: framework.ErrFuncNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixedConfig()
			tt.mutate(&cfg)
			_, err := problem.New(cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSampleFixed(t *testing.T) {
	p, err := problem.New(fixedConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(3, 3))
	pop, err := p.Sample(rng, 10)
	require.NoError(t, err)
	require.Len(t, pop, 10)
	for _, ind := range pop {
		assert.Len(t, ind, 4)
		for _, pt := range ind {
			assert.True(t, p.Region().Contains(pt))
		}
	}
}

func TestSampleVariable(t *testing.T) {
	p, err := problem.New(variableConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(4, 4))
	pop, err := p.Sample(rng, 20)
	require.NoError(t, err)
	for _, ind := range pop {
		assert.GreaterOrEqual(t, len(ind), 2)
		assert.LessOrEqual(t, len(ind), 6)
	}
}

func TestSampleRejectsOddOrNonPositiveSize(t *testing.T) {
	p, err := problem.New(fixedConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(5, 5))
	_, err = p.Sample(rng, 7)
	assert.ErrorIs(t, err, problem.ErrOddPopulation)
	_, err = p.Sample(rng, 0)
	assert.ErrorIs(t, err, problem.ErrOddPopulation)
}

func TestEvaluateShapeAndValues(t *testing.T) {
	p, err := problem.New(fixedConfig())
	require.NoError(t, err)

	pop := framework.Population{
		{{X: 0.2, Y: 0.1}, {X: 0.4, Y: 0.9}, {X: 0.6, Y: 0.5}, {X: 0.8, Y: 0.3}},
		{{X: 0.1, Y: 0.1}, {X: 0.1, Y: 0.2}, {X: 0.1, Y: 0.3}, {X: 0.1, Y: 0.4}},
	}
	om, err := p.Evaluate(pop)
	require.NoError(t, err)
	assert.Equal(t, 2, om.NumObjectives())
	assert.Equal(t, 2, om.NumIndividuals())
	assert.InDelta(t, 0.5, om.At(0, 0), 1e-12)
	assert.InDelta(t, 0.1, om.At(0, 1), 1e-12)
	assert.Equal(t, 4.0, om.At(1, 0))
}

// TestEvaluatePenalty verifies the summed constraint violation, scaled by
// the penalty weight, is subtracted from every objective row uniformly.
func TestEvaluatePenalty(t *testing.T) {
	cfg := fixedConfig()
	cfg.Constraints = []string{"problemtest/always-two"}
	cfg.PenaltyWeight = 0.5
	penalized, err := problem.New(cfg)
	require.NoError(t, err)

	clean, err := problem.New(fixedConfig())
	require.NoError(t, err)

	pop := framework.Population{
		{{X: 0.2, Y: 0.1}, {X: 0.4, Y: 0.9}, {X: 0.6, Y: 0.5}, {X: 0.8, Y: 0.3}},
		{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}},
	}
	base, err := clean.Evaluate(pop)
	require.NoError(t, err)
	got, err := penalized.Evaluate(pop)
	require.NoError(t, err)

	for i := 0; i < base.NumObjectives(); i++ {
		for j := 0; j < base.NumIndividuals(); j++ {
			assert.InDelta(t, base.At(i, j)-1.0, got.At(i, j), 1e-12,
				"objective %d individual %d", i, j)
		}
	}
}

func TestEvaluateFailFast(t *testing.T) {
	cfg := fixedConfig()
	cfg.Objectives = []string{"problemtest/mean-x", "problemtest/fail"}
	p, err := problem.New(cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(6, 6))
	pop, err := p.Sample(rng, 4)
	require.NoError(t, err)

	om, err := p.Evaluate(pop)
	assert.Nil(t, om, "no partial results on failure")
	assert.ErrorIs(t, err, errBrokenObjective)
}

func TestEvaluateConstraintFailFast(t *testing.T) {
	cfg := fixedConfig()
	cfg.Constraints = []string{"problemtest/fail"}
	cfg.PenaltyWeight = 1
	p, err := problem.New(cfg)
	require.NoError(t, err)

	_, err = p.Evaluate(framework.Population{{{X: 0.5, Y: 0.5}}})
	assert.ErrorIs(t, err, errBrokenObjective)
}

func TestCardinalityAccessors(t *testing.T) {
	fixed, err := problem.New(fixedConfig())
	require.NoError(t, err)
	assert.Equal(t, problem.FixedCardinality, fixed.Mode())
	assert.Equal(t, 4, fixed.MinPoints())
	assert.Equal(t, 4, fixed.MaxPoints())

	variable, err := problem.New(variableConfig())
	require.NoError(t, err)
	assert.Equal(t, problem.VariableCardinality, variable.Mode())
	assert.Equal(t, 2, variable.MinPoints())
	assert.Equal(t, 6, variable.MaxPoints())
}
