// Package region provides the bounded 2D regions that layouts live in and
// the uniform spatial sampling the optimizer draws initial points from.
package region

import (
	"math"
	"math/rand/v2"

	"github.com/spatialopt/layoutopt/pkg/layoutopt/framework"
)

// Region is a bounded area of the plane that can report membership and
// produce uniformly distributed interior points.
type Region interface {
	Contains(p framework.Point) bool
	Area() float64
	// BoundingBox returns the axis-aligned bounds enclosing the region.
	BoundingBox() (min, max framework.Point)
	// RandomPoint draws a point uniformly from the region interior.
	RandomPoint(rng *rand.Rand) framework.Point
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min framework.Point
	Max framework.Point
}

// UnitSquare returns the [0,1]×[0,1] rectangle.
func UnitSquare() Rect {
	return Rect{Max: framework.Point{X: 1, Y: 1}}
}

func (r Rect) Contains(p framework.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Area() float64 {
	w := r.Max.X - r.Min.X
	h := r.Max.Y - r.Min.Y
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

func (r Rect) BoundingBox() (framework.Point, framework.Point) {
	return r.Min, r.Max
}

func (r Rect) RandomPoint(rng *rand.Rand) framework.Point {
	return framework.Point{
		X: r.Min.X + rng.Float64()*(r.Max.X-r.Min.X),
		Y: r.Min.Y + rng.Float64()*(r.Max.Y-r.Min.Y),
	}
}

// Polygon is a simple polygon given by its vertices in order. The boundary is
// closed implicitly (last vertex connects back to the first).
type Polygon struct {
	Vertices []framework.Point
}

// Contains uses even-odd ray casting. Points exactly on the boundary may
// land on either side.
func (pg Polygon) Contains(p framework.Point) bool {
	inside := false
	n := len(pg.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := pg.Vertices[i], pg.Vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// Area returns the absolute area by the shoelace formula.
func (pg Polygon) Area() float64 {
	n := len(pg.Vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := pg.Vertices[i], pg.Vertices[j]
		sum += vj.X*vi.Y - vi.X*vj.Y
	}
	return math.Abs(sum) / 2
}

func (pg Polygon) BoundingBox() (framework.Point, framework.Point) {
	if len(pg.Vertices) == 0 {
		return framework.Point{}, framework.Point{}
	}
	min, max := pg.Vertices[0], pg.Vertices[0]
	for _, v := range pg.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// RandomPoint rejection-samples from the bounding box. Callers must not use
// a zero-area polygon; problem construction rejects those up front.
func (pg Polygon) RandomPoint(rng *rand.Rand) framework.Point {
	min, max := pg.BoundingBox()
	for {
		p := framework.Point{
			X: min.X + rng.Float64()*(max.X-min.X),
			Y: min.Y + rng.Float64()*(max.Y-min.Y),
		}
		if pg.Contains(p) {
			return p
		}
	}
}
