package algorithms

import "github.com/spatialopt/layoutopt/pkg/layoutopt/framework"

// ParetoFront returns the first non-dominated front of om.
func ParetoFront(om *framework.ObjectiveMatrix) framework.Front {
	fronts := framework.NonDominatedSort(om)
	if len(fronts) == 0 {
		return nil
	}
	return fronts[0]
}

// FrontPoints extracts the objective-space points of the given front, for
// plotting or reporting.
func FrontPoints(om *framework.ObjectiveMatrix, front framework.Front) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, len(front))
	for i, idx := range front {
		points[i] = om.Column(idx)
	}
	return points
}
