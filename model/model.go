package model

// Point is one airfoil contour coordinate in chord units.
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// SensorArray holds the pressure tap positions, one entry per tap.
// X is the chord fraction, the sign of Y tells upper (+) from lower (-) surface.
type SensorArray struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (s SensorArray) Len() int {
	return len(s.X)
}

// PressureSample is one row of the pressure log
type PressureSample struct {
	Angle     float64   `json:"angle"`
	Reference float64   `json:"reference"` // deltaP_bar column, used by differential Cp
	Pressures []float64 `json:"pressures"`
}

// ReferenceConditions are the free-stream values of one dataset.
type ReferenceConditions struct {
	QInf  float64 `json:"q_inf" yaml:"q_inf"` // dynamic pressure, Pa
	PInf  float64 `json:"p_inf" yaml:"p_inf"` // static pressure, Pa
	UInf  float64 `json:"u_inf" yaml:"u_inf"` // velocity, m/s
	Rho   float64 `json:"rho" yaml:"rho"`     // density, kg/m^3
	Chord float64 `json:"chord" yaml:"chord"` // m
}

// CoefficientResult is the terminal value for one angle of attack.
type CoefficientResult struct {
	Angle float64   `json:"angle"`
	Cp    []float64 `json:"cp,omitempty"`
	CM    float64   `json:"cm"`
	CT    float64   `json:"ct"`
	Drag  float64   `json:"drag"`
	Err   string    `json:"err,omitempty"`
}

func (r CoefficientResult) Failed() bool {
	return r.Err != ""
}

// PolarPoint is one row of an XFOIL or balance polar
type PolarPoint struct {
	Alpha float64 `json:"alpha"`
	CL    float64 `json:"cl"`
	CD    float64 `json:"cd"`
}

// CpPoint is one row of an XFOIL .cp file
type CpPoint struct {
	X  float64 `json:"x"`
	Cp float64 `json:"cp"`
}

// Msg is the websocket envelope.
type Msg struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ComputeRequest is the Content of a "compute" message.
type ComputeRequest struct {
	Sensors   SensorArray         `json:"sensors"`
	Samples   []PressureSample    `json:"samples"`
	Airfoil   []Point             `json:"airfoil,omitempty"`
	Reference ReferenceConditions `json:"reference"`
	CpMode    string              `json:"cp_mode,omitempty"`
	Angles    []float64           `json:"angles,omitempty"`
}

// DragRequest is the Content of a "drag" message.
type DragRequest struct {
	Velocity  []ProfilePoint      `json:"velocity"`
	Pressure  []ProfilePoint      `json:"pressure,omitempty"`
	Reference ReferenceConditions `json:"reference"`
}
