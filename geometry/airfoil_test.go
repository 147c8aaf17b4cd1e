package geometry

import (
	"errors"
	"math"
	"testing"

	"windtunnel/model"
)

func assertEqual(t *testing.T, a, b, accuracy float64, name string) {
	t.Helper()
	if math.Abs(a-b) > accuracy {
		t.Errorf("Assertion %s failed (%f/%f)", name, a, b)
	}
}

// naca00xx builds a symmetric contour TE -> upper -> LE -> lower -> TE
// with m cosine-spaced panels per side; the leading edge sits at index m.
func naca00xx(thickness float64, m int) []model.Point {
	half := func(x float64) float64 {
		return 5 * thickness * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)
	}
	pts := make([]model.Point, 0, 2*m+1)
	for i := 0; i <= m; i++ {
		x := 0.5 * (1 + math.Cos(math.Pi*float64(i)/float64(m)))
		pts = append(pts, model.Point{X: x, Z: half(x)})
	}
	for i := 1; i <= m; i++ {
		x := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(m)))
		pts = append(pts, model.Point{X: x, Z: -half(x)})
	}
	return pts
}

func TestLoadTooShort(t *testing.T) {
	_, err := Load([]model.Point{{X: 0, Z: 0}})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
	if _, err := Load(nil); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for empty contour, got %v", err)
	}
}

func TestSplitSurfacesSymmetric(t *testing.T) {
	a, err := Load(naca00xx(0.12, 40))
	if err != nil {
		t.Fatal(err)
	}
	if a.LeadingEdge() != 40 {
		t.Fatalf("leading edge at %d", a.LeadingEdge())
	}
	upper, lower := a.SplitSurfaces()
	if upper.Len() != lower.Len() {
		t.Fatalf("upper %d points, lower %d points", upper.Len(), lower.Len())
	}
	for name, s := range map[string]Surface{"upper": upper, "lower": lower} {
		for i := 1; i < s.Len(); i++ {
			if s.X[i] <= s.X[i-1] {
				t.Errorf("%s not increasing at %d: %f <= %f", name, i, s.X[i], s.X[i-1])
			}
		}
	}
	assertEqual(t, upper.Z[1], -lower.Z[1], 1e-12, "symmetry")
	if upper.Z[1] <= 0 {
		t.Errorf("upper surface below chord: %f", upper.Z[1])
	}
}

func TestSplitSurfacesFirstMinimum(t *testing.T) {
	a, _ := Load([]model.Point{{X: 1, Z: 0}, {X: 0, Z: 0.1}, {X: 0, Z: -0.1}, {X: 1, Z: 0}})
	if a.LeadingEdge() != 1 {
		t.Errorf("tie should pick first minimum, got %d", a.LeadingEdge())
	}
	upper, lower := a.SplitSurfaces()
	if upper.Len() != 2 || lower.Len() != 3 {
		t.Errorf("upper %d lower %d", upper.Len(), lower.Len())
	}
}

func TestSlopeAt(t *testing.T) {
	s := Surface{X: []float64{0, 0.5, 1}, Z: []float64{0, 0.1, 0}}
	cases := []struct {
		x    float64
		want float64
	}{
		{-1, 0.2},
		{2, -0.2},
		{0.25, 0.2},
		{0.5, 0.2},
		{0.75, -0.2},
		{1, -0.2},
	}
	for _, c := range cases {
		got, err := SlopeAt(s, c.x)
		if err != nil {
			t.Fatalf("x=%f: %v", c.x, err)
		}
		assertEqual(t, got, c.want, 1e-12, "slope")
	}
}

func TestSlopeAtOutOfBounds(t *testing.T) {
	s := Surface{X: []float64{0, 0.5, 1}, Z: []float64{0, 0.1, 0}}
	if _, err := SlopeAt(s, math.NaN()); !errors.Is(err, ErrOutOfBoundsGeometry) {
		t.Errorf("NaN: expected ErrOutOfBoundsGeometry, got %v", err)
	}
	if _, err := SlopeAt(Surface{X: []float64{0}, Z: []float64{0}}, 0); !errors.Is(err, ErrOutOfBoundsGeometry) {
		t.Errorf("single point: expected ErrOutOfBoundsGeometry, got %v", err)
	}
	if _, err := SlopeAt(Surface{}, 0); !errors.Is(err, ErrOutOfBoundsGeometry) {
		t.Errorf("empty: expected ErrOutOfBoundsGeometry, got %v", err)
	}
}

func TestNormalized(t *testing.T) {
	a, _ := Load([]model.Point{{X: 2.2, Z: 0.2}, {X: 0.2, Z: 0.4}, {X: 2.2, Z: 0.2}})
	n := a.Normalized()
	pts := n.Points()
	assertEqual(t, pts[1].X, 0, 1e-12, "origin x")
	assertEqual(t, pts[1].Z, 0, 1e-12, "origin z")
	assertEqual(t, pts[0].X, 1, 1e-12, "trailing edge x")
	assertEqual(t, pts[0].Z, -0.1, 1e-12, "trailing edge z")
	assertEqual(t, n.Chord(), 1, 1e-12, "chord")
}
