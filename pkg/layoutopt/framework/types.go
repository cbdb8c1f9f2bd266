package framework

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Point is a 2D location inside the problem region.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Individual is one candidate layout: an ordered set of points. The slice is
// owned by the population holding it; variation operators return fresh copies.
type Individual []Point

// Clone returns a deep copy of the individual.
func (ind Individual) Clone() Individual {
	out := make(Individual, len(ind))
	copy(out, ind)
	return out
}

// Population is an ordered sequence of individuals. The index of an individual
// is its identity for the duration of one generation and correlates it with
// the columns of an ObjectiveMatrix, front membership and crowding scores.
type Population []Individual

// Clone returns a deep copy of the population.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, ind := range p {
		out[i] = ind.Clone()
	}
	return out
}

// MergePopulations concatenates two populations into a new one. Individuals
// are copied, not aliased.
func MergePopulations(a, b Population) Population {
	out := make(Population, 0, len(a)+len(b))
	for _, ind := range a {
		out = append(out, ind.Clone())
	}
	for _, ind := range b {
		out = append(out, ind.Clone())
	}
	return out
}

// ObjectiveFunc maps an individual to a single objective value. Higher is
// better on every objective; callers must negate minimization objectives.
type ObjectiveFunc func(Individual) (float64, error)

// ConstraintFunc maps an individual to a non-negative violation amount.
// Zero means the constraint is satisfied.
type ConstraintFunc func(Individual) (float64, error)

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// ObjectiveMatrix holds objective values for a whole population: one row per
// objective, one column per individual. A matrix is produced fresh each time a
// population is evaluated and is never mutated in place afterwards.
type ObjectiveMatrix struct {
	rows, cols int
	data       *mat.Dense
}

// NewObjectiveMatrix allocates a matrix for numObjectives objectives and
// numIndividuals individuals. Either dimension may be zero.
func NewObjectiveMatrix(numObjectives, numIndividuals int) *ObjectiveMatrix {
	om := &ObjectiveMatrix{rows: numObjectives, cols: numIndividuals}
	if numObjectives > 0 && numIndividuals > 0 {
		om.data = mat.NewDense(numObjectives, numIndividuals, nil)
	}
	return om
}

// NumObjectives returns the number of rows.
func (om *ObjectiveMatrix) NumObjectives() int { return om.rows }

// NumIndividuals returns the number of columns.
func (om *ObjectiveMatrix) NumIndividuals() int { return om.cols }

// At returns the value of objective obj for individual ind.
func (om *ObjectiveMatrix) At(obj, ind int) float64 { return om.data.At(obj, ind) }

// Set stores the value of objective obj for individual ind.
func (om *ObjectiveMatrix) Set(obj, ind int, v float64) { om.data.Set(obj, ind, v) }

// Column returns a copy of individual ind's values across all objectives.
func (om *ObjectiveMatrix) Column(ind int) ObjectiveSpacePoint {
	col := make(ObjectiveSpacePoint, om.rows)
	for i := 0; i < om.rows; i++ {
		col[i] = om.data.At(i, ind)
	}
	return col
}

// SetColumn stores a full objective-space point for individual ind.
func (om *ObjectiveMatrix) SetColumn(ind int, col ObjectiveSpacePoint) {
	for i, v := range col {
		om.data.Set(i, ind, v)
	}
}

// Rows returns a copy of the matrix as one slice per objective.
func (om *ObjectiveMatrix) Rows() [][]float64 {
	rows := make([][]float64, om.rows)
	for i := range rows {
		if om.data != nil {
			rows[i] = mat.Row(nil, i, om.data)
		} else {
			rows[i] = []float64{}
		}
	}
	return rows
}

// Select builds a new matrix from the given columns, in order.
func (om *ObjectiveMatrix) Select(cols []int) *ObjectiveMatrix {
	out := NewObjectiveMatrix(om.rows, len(cols))
	for j, src := range cols {
		for i := 0; i < om.rows; i++ {
			out.data.Set(i, j, om.data.At(i, src))
		}
	}
	return out
}

// MergeObjectives concatenates the columns of two matrices with the same
// number of objectives into a new matrix.
func MergeObjectives(a, b *ObjectiveMatrix) (*ObjectiveMatrix, error) {
	if a.rows != b.rows {
		return nil, fmt.Errorf("objective count mismatch: %d vs %d", a.rows, b.rows)
	}
	out := NewObjectiveMatrix(a.rows, a.cols+b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.data.Set(i, j, a.data.At(i, j))
		}
		for j := 0; j < b.cols; j++ {
			out.data.Set(i, a.cols+j, b.data.At(i, j))
		}
	}
	return out, nil
}

// MarshalJSON encodes the matrix as one slice per objective row.
func (om *ObjectiveMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(om.Rows())
}

// UnmarshalJSON decodes a matrix encoded by MarshalJSON.
func (om *ObjectiveMatrix) UnmarshalJSON(b []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	om.rows = len(rows)
	om.cols = 0
	om.data = nil
	if om.rows == 0 {
		return nil
	}
	om.cols = len(rows[0])
	for i, row := range rows {
		if len(row) != om.cols {
			return fmt.Errorf("ragged objective matrix: row %d has %d values, want %d", i, len(row), om.cols)
		}
	}
	if om.cols == 0 {
		return nil
	}
	om.data = mat.NewDense(om.rows, om.cols, nil)
	for i, row := range rows {
		om.data.SetRow(i, row)
	}
	return nil
}
