package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"windtunnel/model"
)

var (
	ErrInvalidGeometry     = errors.New("invalid geometry")
	ErrOutOfBoundsGeometry = errors.New("out of bounds geometry")
)

// Airfoil is a closed contour ordered from the trailing edge around one
// surface to the leading edge and back along the other.
type Airfoil struct {
	x []float64
	z []float64
}

// Surface is one half of the contour, leading edge first.
type Surface struct {
	X []float64
	Z []float64
}

func (s Surface) Len() int {
	return len(s.X)
}

func Load(points []model.Point) (*Airfoil, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("airfoil with %d points: %w", len(points), ErrInvalidGeometry)
	}
	a := &Airfoil{
		x: make([]float64, len(points)),
		z: make([]float64, len(points)),
	}
	for i, p := range points {
		a.x[i] = p.X
		a.z[i] = p.Z
	}
	return a, nil
}

func (a *Airfoil) Len() int {
	return len(a.x)
}

// Points returns a copy of the contour.
func (a *Airfoil) Points() []model.Point {
	pts := make([]model.Point, len(a.x))
	for i := range a.x {
		pts[i] = model.Point{X: a.x[i], Z: a.z[i]}
	}
	return pts
}

// LeadingEdge is the index of the first minimum x.
func (a *Airfoil) LeadingEdge() int {
	return floats.MinIdx(a.x)
}

// Chord is the x extent of the contour.
func (a *Airfoil) Chord() float64 {
	return floats.Max(a.x) - floats.Min(a.x)
}

// SplitSurfaces cuts the contour at the leading edge. The first part is
// reversed so both halves run leading edge to trailing edge; the leading
// edge point belongs to both. Nothing is re-sorted.
func (a *Airfoil) SplitSurfaces() (upper, lower Surface) {
	le := a.LeadingEdge()
	upper = Surface{
		X: reversed(a.x[:le+1]),
		Z: reversed(a.z[:le+1]),
	}
	lower = Surface{
		X: append([]float64(nil), a.x[le:]...),
		Z: append([]float64(nil), a.z[le:]...),
	}
	return upper, lower
}

// Normalized moves the point closest to x=0 to the origin and scales both
// axes by the chord, as XFOIL coordinate files are plotted against x/c.
func (a *Airfoil) Normalized() *Airfoil {
	origin := 0
	for i := range a.x {
		if math.Abs(a.x[i]) < math.Abs(a.x[origin]) {
			origin = i
		}
	}
	chord := a.Chord()
	if chord == 0 {
		chord = 1
	}
	n := &Airfoil{
		x: make([]float64, len(a.x)),
		z: make([]float64, len(a.z)),
	}
	for i := range a.x {
		n.x[i] = (a.x[i] - a.x[origin]) / chord
		n.z[i] = (a.z[i] - a.z[origin]) / chord
	}
	return n
}

// SlopeAt returns dz/dx of the surface at x. Outside the surface the slope
// of the nearest end segment is used.
func SlopeAt(s Surface, x float64) (float64, error) {
	n := s.Len()
	if n < 2 || len(s.Z) != n {
		return 0, fmt.Errorf("slope at %g on surface of %d points: %w", x, n, ErrOutOfBoundsGeometry)
	}
	if x < s.X[0] {
		return segmentSlope(s, 1), nil
	}
	if x > s.X[n-1] {
		return segmentSlope(s, n-1), nil
	}
	for i := 1; i < n; i++ {
		if s.X[i-1] <= x && x <= s.X[i] {
			return segmentSlope(s, i), nil
		}
	}
	return 0, fmt.Errorf("no segment brackets x=%g: %w", x, ErrOutOfBoundsGeometry)
}

// slope of segment [i-1, i]
func segmentSlope(s Surface, i int) float64 {
	return (s.Z[i] - s.Z[i-1]) / (s.X[i] - s.X[i-1])
}

func reversed(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[len(v)-1-i] = v[i]
	}
	return out
}
