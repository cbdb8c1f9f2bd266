package framework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
)

func constantObjective(framework.Individual) (float64, error) { return 1, nil }

func zeroViolation(framework.Individual) (float64, error) { return 0, nil }

func TestObjectiveRegistry(t *testing.T) {
	require.NoError(t, framework.RegisterObjective("registrytest/constant", constantObjective))

	fn, err := framework.LookupObjective("registrytest/constant")
	require.NoError(t, err)
	v, err := fn(nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	err = framework.RegisterObjective("registrytest/constant", constantObjective)
	assert.ErrorIs(t, err, framework.ErrFuncExists)

	_, err = framework.LookupObjective("registrytest/missing")
	assert.ErrorIs(t, err, framework.ErrFuncNotFound)

	assert.Contains(t, framework.ObjectiveNames(), "registrytest/constant")
}

func TestConstraintRegistry(t *testing.T) {
	require.NoError(t, framework.RegisterConstraint("registrytest/zero", zeroViolation))

	fn, err := framework.LookupConstraint("registrytest/zero")
	require.NoError(t, err)
	v, err := fn(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	err = framework.RegisterConstraint("registrytest/zero", zeroViolation)
	assert.ErrorIs(t, err, framework.ErrFuncExists)

	_, err = framework.LookupConstraint("registrytest/missing")
	assert.ErrorIs(t, err, framework.ErrFuncNotFound)

	assert.Contains(t, framework.ConstraintNames(), "registrytest/zero")
}

func TestRegisterRejectsEmpty(t *testing.T) {
	assert.Error(t, framework.RegisterObjective("", constantObjective))
	assert.Error(t, framework.RegisterObjective("registrytest/nil", nil))
	assert.Error(t, framework.RegisterConstraint("", zeroViolation))
	assert.Error(t, framework.RegisterConstraint("registrytest/nil", nil))
}
