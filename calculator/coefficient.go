package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"windtunnel/geometry"
	"windtunnel/model"
	"windtunnel/numeric"
)

// PressureToCp normalises a tap pressure by the free-stream dynamic pressure.
func PressureToCp(pressure, qInf float64) (float64, error) {
	if qInf == 0 {
		return 0, fmt.Errorf("q_inf is zero: %w", ErrDivisionByZero)
	}
	return pressure / qInf, nil
}

// DifferentialCp is (reference - pressure) / q_inf, for logs that record
// pressures relative to the tunnel reference reading.
func DifferentialCp(reference, pressure, qInf float64) (float64, error) {
	return PressureToCp(reference-pressure, qInf)
}

// CpSeries converts every pressure of a sample.
func CpSeries(sample model.PressureSample, qInf float64, mode string) ([]float64, error) {
	if qInf == 0 {
		return nil, fmt.Errorf("cp at angle %g: q_inf is zero: %w", sample.Angle, ErrDivisionByZero)
	}
	cp := make([]float64, len(sample.Pressures))
	for i, p := range sample.Pressures {
		switch mode {
		case "", model.CpGauge:
			cp[i] = p / qInf
		case model.CpDifferential:
			cp[i] = (sample.Reference - p) / qInf
		default:
			return nil, fmt.Errorf("cp mode %q: %w", mode, ErrUnknownCpMode)
		}
	}
	return cp, nil
}

// SelectSample returns the first sample recorded at exactly angle.
func SelectSample(samples []model.PressureSample, angle float64) (model.PressureSample, error) {
	for _, s := range samples {
		if s.Angle == angle {
			return s, nil
		}
	}
	return model.PressureSample{}, fmt.Errorf("angle %g: %w", angle, ErrAngleNotFound)
}

// PitchingMomentArea is the C_M proxy of the 2D campaign: Cp is split into
// an upper series (y > 0) and a lower series (y < 0), each weighted by its
// moment arm x and integrated over x. The result is upper minus lower.
//
// This is a moment-arm weighted pressure integral about x = 0, not a moment
// about the quarter chord, and it ignores the surface slope.
func PitchingMomentArea(cp, y, x []float64) (float64, error) {
	if len(cp) != len(y) || len(cp) != len(x) {
		return 0, fmt.Errorf("pitching moment: %d cp, %d y, %d x: %w", len(cp), len(y), len(x), ErrLengthMismatch)
	}
	cpUpper := numeric.Mask(cp, func(i int) bool { return y[i] > 0 })
	cpLower := numeric.Mask(cp, func(i int) bool { return y[i] < 0 })

	areaUpper, err := numeric.Trapezoid(numeric.Mul(cpUpper, x), x)
	if err != nil {
		return 0, err
	}
	areaLower, err := numeric.Trapezoid(numeric.Mul(cpLower, x), x)
	if err != nil {
		return 0, err
	}
	return areaUpper - areaLower, nil
}

// TangentialCoefficient integrates cp * dz/dx along each surface over the
// taps that sit on it and returns lower minus upper. Taps with y == 0 belong
// to neither surface. Taps whose slope cannot be found, and taps beyond the
// shortest of the input arrays, are skipped with a warning.
func TangentialCoefficient(cp []float64, airfoil *geometry.Airfoil, x, y []float64) (float64, error) {
	if airfoil == nil {
		return 0, fmt.Errorf("tangential coefficient without airfoil: %w", ErrInvalidGeometry)
	}
	n := min(len(cp), len(x), len(y))
	if len(cp) != n || len(x) != n || len(y) != n {
		log.WithFields(log.Fields{
			"cp": len(cp),
			"x":  len(x),
			"y":  len(y),
		}).Warnf("sensor count mismatch, only the first %d taps are used", n)
	}

	upper, lower := airfoil.SplitSurfaces()
	var xUpper, fUpper, xLower, fLower []float64
	for i := 0; i < n; i++ {
		var surface geometry.Surface
		var name string
		switch {
		case y[i] > 0:
			surface, name = upper, "upper"
		case y[i] < 0:
			surface, name = lower, "lower"
		default:
			continue
		}
		slope, err := geometry.SlopeAt(surface, x[i])
		if err != nil {
			log.WithFields(log.Fields{
				"sensor":  i,
				"x":       x[i],
				"surface": name,
			}).Warn("sensor out of bounds, skipped: ", err)
			continue
		}
		if name == "upper" {
			xUpper = append(xUpper, x[i])
			fUpper = append(fUpper, cp[i]*slope)
		} else {
			xLower = append(xLower, x[i])
			fLower = append(fLower, cp[i]*slope)
		}
	}

	upperArea, err := numeric.Trapezoid(fUpper, xUpper)
	if err != nil {
		return 0, err
	}
	lowerArea, err := numeric.Trapezoid(fLower, xLower)
	if err != nil {
		return 0, err
	}
	return lowerArea - upperArea, nil
}
