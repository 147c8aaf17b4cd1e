package numeric

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrLengthMismatch     = errors.New("length mismatch")
)

// Trapezoid integrates values over positions with the composite trapezoidal
// rule, segment by segment in the given order. Positions are not sorted, so a
// descending run contributes with a negative width.
//
// Zero or one point integrates to 0.
func Trapezoid(values, positions []float64) (float64, error) {
	if len(values) != len(positions) {
		return 0, fmt.Errorf("trapezoid: %d values over %d positions: %w", len(values), len(positions), ErrLengthMismatch)
	}
	var area float64
	for i := 0; i+1 < len(values); i++ {
		area += 0.5 * (values[i] + values[i+1]) * (positions[i+1] - positions[i])
	}
	return area, nil
}

// Mask returns a copy of values with every entry whose keep flag is false set to 0.
func Mask(values []float64, keep func(i int) bool) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if keep(i) {
			out[i] = v
		}
	}
	return out
}

// Mul returns the element-wise product of a and b, truncated to the shorter one.
func Mul(a, b []float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return floats.MulTo(make([]float64, n), a[:n], b[:n])
}
