package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"windtunnel/model"
)

// Manifest describes one tunnel entry: where every table lives and the
// free-stream reference values. Relative paths resolve against the
// manifest's directory.
type Manifest struct {
	Name      string                    `yaml:"name"`
	Reference model.ReferenceConditions `yaml:"reference"`
	CpMode    string                    `yaml:"cp_mode"`
	Angles    []float64                 `yaml:"angles"` // empty means every recorded angle
	Sources   Sources                   `yaml:"sources"`
}

type Sources struct {
	Sensors   SensorSource    `yaml:"sensors"`
	Pressures PressureSource  `yaml:"pressures"`
	Geometry  *GeometrySource `yaml:"geometry"`
	Wake      *WakeSource     `yaml:"wake"`
	Polars    []CurveSource   `yaml:"polars"`
	CpCurves  []CurveSource   `yaml:"cp_curves"`
}

// SensorSource is the tap position table (PPS sheet).
type SensorSource struct {
	SheetRef     `yaml:",inline"`
	FirstRow     int    `yaml:"first_row"` // 1-based, default 3
	Count        int    `yaml:"count"`     // 0 reads up to the first blank x
	XColumn      string `yaml:"x_column"`  // default B
	YColumn      string `yaml:"y_column"`  // default C
	PercentChord bool   `yaml:"percent_chord"`
}

// PressureSource is the scanner log, one row per angle of attack.
type PressureSource struct {
	SheetRef        `yaml:",inline"`
	FirstRow        int    `yaml:"first_row"`        // default 3
	AngleColumn     string `yaml:"angle_column"`     // default 3
	ReferenceColumn string `yaml:"reference_column"` // default 4
	FirstTapColumn  string `yaml:"first_tap_column"` // default 9
}

// GeometrySource is the airfoil contour, TE -> LE -> TE.
type GeometrySource struct {
	SheetRef `yaml:",inline"`
	FirstRow int    `yaml:"first_row"` // default 3 for workbooks, 2 for .dat
	XColumn  string `yaml:"x_column"`
	ZColumn  string `yaml:"z_column"`
}

// WakeSource is the rake survey: a header row of spanwise locations and one
// row per angle of attack.
type WakeSource struct {
	Velocity TableSource  `yaml:"velocity"`
	Pressure *TableSource `yaml:"pressure"`
}

type TableSource struct {
	SheetRef    `yaml:",inline"`
	HeaderRow   int    `yaml:"header_row"` // 1-based, default 1
	SkipRows    int    `yaml:"skip_rows"`  // rows between header and data
	AngleColumn string `yaml:"angle_column"`
}

// CurveSource is a plain numeric file such as an XFOIL polar or .cp dump.
type CurveSource struct {
	SheetRef `yaml:",inline"`
	Label    string `yaml:"label"`
	SkipRows int    `yaml:"skip_rows"`
}

// LoadManifest reads and parses a campaign manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.resolve(filepath.Dir(path))
	return m, nil
}

func ParseManifest(data []byte) (*Manifest, error) {
	m := Manifest{
		Reference: model.ReferenceConditions{
			QInf:  model.DefaultQInf,
			PInf:  model.DefaultPInf,
			UInf:  model.DefaultUInf,
			Rho:   model.DefaultRho,
			Chord: model.DefaultChord,
		},
		CpMode: model.CpGauge,
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Sources.Sensors.Path == "" || m.Sources.Pressures.Path == "" {
		return nil, fmt.Errorf("parse manifest: sensors and pressures sources are required")
	}
	return &m, nil
}

func (m *Manifest) resolve(dir string) {
	abs := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	s := &m.Sources
	abs(&s.Sensors.Path)
	abs(&s.Pressures.Path)
	if s.Geometry != nil {
		abs(&s.Geometry.Path)
	}
	if s.Wake != nil {
		abs(&s.Wake.Velocity.Path)
		if s.Wake.Pressure != nil {
			abs(&s.Wake.Pressure.Path)
		}
	}
	for i := range s.Polars {
		abs(&s.Polars[i].Path)
	}
	for i := range s.CpCurves {
		abs(&s.CpCurves[i].Path)
	}
}
