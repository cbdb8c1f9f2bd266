package framework

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrFuncExists   = errors.New("function already registered")
	ErrFuncNotFound = errors.New("function not registered")
)

// Objective and constraint functions are registered by name so that a
// persisted problem definition can be reconstructed without serializing
// arbitrary callables.
var objectiveRegistry = struct {
	mu sync.RWMutex
	m  map[string]ObjectiveFunc
}{m: make(map[string]ObjectiveFunc)}

var constraintRegistry = struct {
	mu sync.RWMutex
	m  map[string]ConstraintFunc
}{m: make(map[string]ConstraintFunc)}

// RegisterObjective registers fn under name. Names are unique.
func RegisterObjective(name string, fn ObjectiveFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("objective registration needs a name and a function")
	}
	objectiveRegistry.mu.Lock()
	defer objectiveRegistry.mu.Unlock()
	if _, ok := objectiveRegistry.m[name]; ok {
		return fmt.Errorf("objective %q: %w", name, ErrFuncExists)
	}
	objectiveRegistry.m[name] = fn
	return nil
}

// MustRegisterObjective is RegisterObjective for package init blocks.
func MustRegisterObjective(name string, fn ObjectiveFunc) {
	if err := RegisterObjective(name, fn); err != nil {
		panic(err)
	}
}

// LookupObjective resolves a registered objective by name.
func LookupObjective(name string) (ObjectiveFunc, error) {
	objectiveRegistry.mu.RLock()
	defer objectiveRegistry.mu.RUnlock()
	fn, ok := objectiveRegistry.m[name]
	if !ok {
		return nil, fmt.Errorf("objective %q: %w", name, ErrFuncNotFound)
	}
	return fn, nil
}

// ObjectiveNames lists registered objective names, sorted.
func ObjectiveNames() []string {
	objectiveRegistry.mu.RLock()
	defer objectiveRegistry.mu.RUnlock()
	names := make([]string, 0, len(objectiveRegistry.m))
	for name := range objectiveRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterConstraint registers fn under name. Names are unique.
func RegisterConstraint(name string, fn ConstraintFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("constraint registration needs a name and a function")
	}
	constraintRegistry.mu.Lock()
	defer constraintRegistry.mu.Unlock()
	if _, ok := constraintRegistry.m[name]; ok {
		return fmt.Errorf("constraint %q: %w", name, ErrFuncExists)
	}
	constraintRegistry.m[name] = fn
	return nil
}

// MustRegisterConstraint is RegisterConstraint for package init blocks.
func MustRegisterConstraint(name string, fn ConstraintFunc) {
	if err := RegisterConstraint(name, fn); err != nil {
		panic(err)
	}
}

// LookupConstraint resolves a registered constraint by name.
func LookupConstraint(name string) (ConstraintFunc, error) {
	constraintRegistry.mu.RLock()
	defer constraintRegistry.mu.RUnlock()
	fn, ok := constraintRegistry.m[name]
	if !ok {
		return nil, fmt.Errorf("constraint %q: %w", name, ErrFuncNotFound)
	}
	return fn, nil
}

// ConstraintNames lists registered constraint names, sorted.
func ConstraintNames() []string {
	constraintRegistry.mu.RLock()
	defer constraintRegistry.mu.RUnlock()
	names := make([]string, 0, len(constraintRegistry.m))
	for name := range constraintRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
