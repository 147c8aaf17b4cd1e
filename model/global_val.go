package model

// Free-stream values of the 2D campaign, used as manifest defaults.
const (
	DefaultQInf  = 335.7613443 // Pa
	DefaultPInf  = 99495.54635 // Pa
	DefaultUInf  = 23.8392323  // m/s
	DefaultRho   = 1.225       // kg/m^3
	DefaultChord = 0.16        // m
)

// Cp modes
const (
	CpGauge        = "gauge"        // p / q_inf
	CpDifferential = "differential" // (reference - p) / q_inf
)
