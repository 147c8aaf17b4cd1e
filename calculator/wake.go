package calculator

import (
	"fmt"

	"windtunnel/model"
)

// WakeDrag integrates the rake survey behind the model. For each pair of
// neighbouring velocity locations it adds the momentum deficit
// rho*(uInf-U)*U*dy, with U the mean of the two end readings, and when a
// pressure profile is given the static deficit (pInf-p)*dy.
//
// Readings are looked up by nearest location, so a pressure rake sampled on
// a different grid than the velocity rake is matched to its closest probes.
func WakeDrag(velocity, pressure model.Profile, uInf, pInf, rho float64) (float64, error) {
	locs := velocity.Locations()
	if len(locs) < 2 {
		return 0, fmt.Errorf("wake drag over %d locations: %w", len(locs), ErrInsufficientPoints)
	}

	var drag float64
	for i := 0; i+1 < len(locs); i++ {
		start, end := locs[i], locs[i+1]
		width := end - start

		uStart, _ := velocity.Nearest(start)
		uEnd, _ := velocity.Nearest(end)
		u := 0.5 * (uStart + uEnd)
		drag += rho * (uInf - u) * u * width

		if len(pressure) > 0 {
			pStart, _ := pressure.Nearest(start)
			pEnd, _ := pressure.Nearest(end)
			drag += (pInf - 0.5*(pStart+pEnd)) * width
		}
	}
	return drag, nil
}
