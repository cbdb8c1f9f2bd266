// Package history records per-generation snapshots of an optimization run
// for external collaborators (visualization, persistence). Snapshots are
// deep copies; the package never aliases optimizer-owned state.
package history

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
)

// Generation is one snapshot: the population at a generation boundary and
// its objective matrix. Callers treat both as read-only.
type Generation struct {
	Population framework.Population
	Objectives *framework.ObjectiveMatrix
}

// Run is the full record of one optimization: problem identity by registered
// function names, the seed, every generation, and the final RNG state.
type Run struct {
	id              uuid.UUID
	problemName     string
	objectiveNames  []string
	constraintNames []string
	seed            uint64
	generations     []Generation
	rngState        []byte
}

// NewRun starts an empty record.
func NewRun(problemName string, objectiveNames, constraintNames []string, seed uint64) *Run {
	return &Run{
		id:              uuid.New(),
		problemName:     problemName,
		objectiveNames:  append([]string(nil), objectiveNames...),
		constraintNames: append([]string(nil), constraintNames...),
		seed:            seed,
	}
}

func (r *Run) ID() uuid.UUID       { return r.id }
func (r *Run) ProblemName() string { return r.problemName }
func (r *Run) Seed() uint64        { return r.seed }

// ObjectiveNames returns the registered objective names, row order.
func (r *Run) ObjectiveNames() []string {
	return append([]string(nil), r.objectiveNames...)
}

// ConstraintNames returns the registered constraint names.
func (r *Run) ConstraintNames() []string {
	return append([]string(nil), r.constraintNames...)
}

// Append records a generation boundary. The population is deep-copied; the
// matrix is already immutable by convention and stored as-is.
func (r *Run) Append(pop framework.Population, om *framework.ObjectiveMatrix) {
	r.generations = append(r.generations, Generation{
		Population: pop.Clone(),
		Objectives: om,
	})
}

// Len returns the number of recorded generations, including the initial one.
func (r *Run) Len() int { return len(r.generations) }

// At returns the i-th recorded generation.
func (r *Run) At(i int) Generation { return r.generations[i] }

// Final returns the last recorded generation.
func (r *Run) Final() Generation { return r.generations[len(r.generations)-1] }

// FinalFront returns the first Pareto front of the final generation.
func (r *Run) FinalFront() framework.Front {
	if len(r.generations) == 0 {
		return nil
	}
	fronts := framework.NonDominatedSort(r.Final().Objectives)
	if len(fronts) == 0 {
		return nil
	}
	return fronts[0]
}

// SetRNGState stores the serialized RNG state at run end, so a persistence
// collaborator can resume the stream.
func (r *Run) SetRNGState(state []byte) {
	r.rngState = append([]byte(nil), state...)
}

// RNGState returns the serialized RNG state recorded at run end.
func (r *Run) RNGState() []byte {
	return append([]byte(nil), r.rngState...)
}

type runJSON struct {
	ID          uuid.UUID        `json:"id"`
	Problem     string           `json:"problem"`
	Objectives  []string         `json:"objectives"`
	Constraints []string         `json:"constraints,omitempty"`
	Seed        uint64           `json:"seed"`
	RNGState    []byte           `json:"rngState,omitempty"`
	Generations []generationJSON `json:"generations"`
}

type generationJSON struct {
	Population []framework.Individual     `json:"population"`
	Objectives *framework.ObjectiveMatrix `json:"objectives"`
}

func (r *Run) MarshalJSON() ([]byte, error) {
	out := runJSON{
		ID:          r.id,
		Problem:     r.problemName,
		Objectives:  r.objectiveNames,
		Constraints: r.constraintNames,
		Seed:        r.seed,
		RNGState:    r.rngState,
		Generations: make([]generationJSON, len(r.generations)),
	}
	for i, g := range r.generations {
		out.Generations[i] = generationJSON{
			Population: g.Population,
			Objectives: g.Objectives,
		}
	}
	return json.Marshal(out)
}

func (r *Run) UnmarshalJSON(b []byte) error {
	var in runJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("decoding run record: %w", err)
	}
	r.id = in.ID
	r.problemName = in.Problem
	r.objectiveNames = in.Objectives
	r.constraintNames = in.Constraints
	r.seed = in.Seed
	r.rngState = in.RNGState
	r.generations = make([]Generation, len(in.Generations))
	for i, g := range in.Generations {
		r.generations[i] = Generation{
			Population: g.Population,
			Objectives: g.Objectives,
		}
	}
	return nil
}
