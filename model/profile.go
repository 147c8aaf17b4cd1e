package model

import (
	"math"
	"sort"
)

// ProfilePoint is one rake reading at a spanwise location.
type ProfilePoint struct {
	Location float64 `json:"location"`
	Value    float64 `json:"value"`
}

// Profile maps a rake location (mm) to a velocity or pressure reading.
type Profile map[float64]float64

func NewProfile(points []ProfilePoint) Profile {
	p := make(Profile, len(points))
	for _, pt := range points {
		p[pt.Location] = pt.Value
	}
	return p
}

// Locations returns the rake locations in ascending order.
func (p Profile) Locations() []float64 {
	locs := make([]float64, 0, len(p))
	for loc := range p {
		locs = append(locs, loc)
	}
	sort.Float64s(locs)
	return locs
}

// Nearest returns the reading whose location is closest to loc.
// Ties resolve to the smaller location. ok is false for an empty profile.
func (p Profile) Nearest(loc float64) (value float64, ok bool) {
	if v, found := p[loc]; found {
		return v, true
	}
	best := math.Inf(1)
	for _, l := range p.Locations() {
		if d := math.Abs(l - loc); d < best {
			best = d
			value = p[l]
			ok = true
		}
	}
	return value, ok
}
