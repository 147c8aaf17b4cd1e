package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"windtunnel/geometry"
	"windtunnel/model"
)

const qInf = 335.76

func assertEqual(t *testing.T, a, b, accuracy float64, name string) {
	t.Helper()
	if math.Abs(a-b) > accuracy {
		t.Errorf("Assertion %s failed (%f/%f)", name, a, b)
	}
}

func TestPressureToCpRoundTrip(t *testing.T) {
	for _, q := range []float64{335.7613443, -12.5, 1e-3, 4e5} {
		for _, p := range []float64{-1500, -0.25, 0, 17, 99495.5} {
			cp, err := PressureToCp(p, q)
			if err != nil {
				t.Fatal(err)
			}
			assertEqual(t, cp*q, p, 1e-9*math.Max(1, math.Abs(p)), "round trip")
		}
	}
}

func TestPressureToCpZeroQ(t *testing.T) {
	if _, err := PressureToCp(10, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := CpSeries(model.PressureSample{Pressures: []float64{1}}, 0, model.CpGauge); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestCpSeriesModes(t *testing.T) {
	sample := model.PressureSample{Angle: 2, Reference: 100, Pressures: []float64{40, 100, 160}}
	gauge, err := CpSeries(sample, 200, model.CpGauge)
	if err != nil {
		t.Fatal(err)
	}
	diff, err := CpSeries(sample, 200, model.CpDifferential)
	if err != nil {
		t.Fatal(err)
	}
	wantGauge := []float64{0.2, 0.5, 0.8}
	wantDiff := []float64{0.3, 0, -0.3}
	for i := range sample.Pressures {
		assertEqual(t, gauge[i], wantGauge[i], 1e-12, "gauge")
		assertEqual(t, diff[i], wantDiff[i], 1e-12, "differential")
	}
	d, _ := DifferentialCp(100, 40, 200)
	assertEqual(t, d, 0.3, 1e-12, "DifferentialCp")

	if _, err := CpSeries(sample, 200, "absolute"); !errors.Is(err, ErrUnknownCpMode) {
		t.Errorf("expected ErrUnknownCpMode, got %v", err)
	}
}

func campaignSamples() []model.PressureSample {
	var samples []model.PressureSample
	for a := -6.0; a <= 10; a++ {
		samples = append(samples, model.PressureSample{Angle: a, Pressures: []float64{a * 10}})
	}
	for a := 10.5; a <= 16; a += 0.5 {
		samples = append(samples, model.PressureSample{Angle: a, Pressures: []float64{a * 10}})
	}
	return samples
}

func TestSelectSample(t *testing.T) {
	samples := campaignSamples()
	s, err := SelectSample(samples, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Angle != 5.0 || s.Pressures[0] != 50 {
		t.Errorf("wrong row: %+v", s)
	}
	s, err = SelectSample(samples, 12.5)
	if err != nil || s.Pressures[0] != 125 {
		t.Errorf("half degree row: %+v %v", s, err)
	}
	if _, err := SelectSample(samples, 5.25); !errors.Is(err, ErrAngleNotFound) {
		t.Errorf("expected ErrAngleNotFound, got %v", err)
	}
}

func TestPitchingMomentZeroCp(t *testing.T) {
	x := []float64{0, 0.1, 0.4, 0.2, 0.9}
	y := []float64{1, -1, 1, -1, 0}
	cm, err := PitchingMomentArea(make([]float64, len(x)), y, x)
	if err != nil {
		t.Fatal(err)
	}
	if cm != 0 {
		t.Errorf("expected 0, got %f", cm)
	}
}

func TestPitchingMomentLengthMismatch(t *testing.T) {
	_, err := PitchingMomentArea([]float64{1, 2}, []float64{1, -1, 1}, []float64{0, 0.5, 1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestEndToEndFourTaps(t *testing.T) {
	percent := []float64{0, 25, 75, 100}
	x := make([]float64, len(percent))
	for i, p := range percent {
		x[i] = p / 100
	}
	y := []float64{1, 1, -1, -1}
	sample := model.PressureSample{Angle: 0, Pressures: []float64{100, 50, -50, -100}}

	cp, err := CpSeries(sample, qInf, model.CpGauge)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0.298, 0.149, -0.149, -0.298} {
		assertEqual(t, cp[i], want, 5e-4, "cp")
	}

	// upper integrand cp*x = [0, 0.25*c1, 0, 0], lower = [0, 0, 0.75*c2, c3]
	// upper: 0.5*0.25c1*0.25 + 0.5*0.25c1*0.5            = 0.09375*c1
	// lower: 0.5*0.75c2*0.5 + 0.5*(0.75c2 + c3)*0.25     = 0.28125*c2 + 0.125*c3
	want := 0.09375*cp[1] - (0.28125*cp[2] + 0.125*cp[3])
	cm, err := PitchingMomentArea(cp, y, x)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, cm, want, 1e-12, "cm")
	assertEqual(t, cm, 0.093073, 1e-5, "cm value")
}

// diamond: upper slopes 0.2 / -0.2, lower slopes -0.2 / 0.2
func diamond(t *testing.T) *geometry.Airfoil {
	a, err := geometry.Load([]model.Point{
		{X: 1, Z: 0}, {X: 0.5, Z: 0.1}, {X: 0, Z: 0}, {X: 0.5, Z: -0.1}, {X: 1, Z: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestTangentialCoefficient(t *testing.T) {
	cp := []float64{1, 2, 3, 4}
	x := []float64{0.25, 0.75, 0.25, 0.75}
	y := []float64{1, 1, -1, -1}
	// upper: [0.2, -0.4] -> -0.05; lower: [-0.6, 0.8] -> 0.05
	ct, err := TangentialCoefficient(cp, diamond(t), x, y)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, ct, 0.1, 1e-12, "ct")
}

func TestTangentialCoefficientSkipsSensors(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	cp := []float64{1, 2, 9, 3, 4, 7}
	x := []float64{0.25, 0.75, math.NaN(), 0.25, 0.75}
	y := []float64{1, 1, 1, -1, -1}
	// the NaN tap is out of bounds, the sixth cp has no position
	ct, err := TangentialCoefficient(cp, diamond(t), x, y)
	if err != nil {
		t.Fatal(err)
	}
	cpClean := []float64{1, 2, 3, 4}
	want, _ := TangentialCoefficient(cpClean, diamond(t), []float64{0.25, 0.75, 0.25, 0.75}, []float64{1, 1, -1, -1})
	assertEqual(t, ct, want, 1e-12, "ct")

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level.String() == "warning" {
			warnings++
		}
	}
	if warnings < 2 {
		t.Errorf("expected warnings for the mismatch and the NaN tap, got %d", warnings)
	}
}

func TestTangentialCoefficientChordTapIgnored(t *testing.T) {
	with, _ := TangentialCoefficient([]float64{1, 2, 5, 3, 4}, diamond(t),
		[]float64{0.25, 0.75, 0.5, 0.25, 0.75}, []float64{1, 1, 0, -1, -1})
	without, _ := TangentialCoefficient([]float64{1, 2, 3, 4}, diamond(t),
		[]float64{0.25, 0.75, 0.25, 0.75}, []float64{1, 1, -1, -1})
	assertEqual(t, with, without, 1e-12, "y == 0 tap")
}

func TestTangentialCoefficientWithoutAirfoil(t *testing.T) {
	if _, err := TangentialCoefficient([]float64{1}, nil, []float64{0}, []float64{1}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}
