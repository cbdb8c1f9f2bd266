package benchmarks

import (
	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
	"github.com/spatialopt/layoutopt/pkg/layoutopt/problem"
)

// Problem describes the contract a benchmark needs to implement.
type Problem interface {
	Name() string

	// Config builds the problem configuration the optimizer consumes.
	Config() problem.Config

	// TrueParetoFront is optional due to the difficulty of finding the
	// true front in some types of problems. When there isn't a way to
	// find the true front, just return nil; plotting then omits the
	// reference series.
	TrueParetoFront(int) []framework.ObjectiveSpacePoint
}
