package adapter

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"windtunnel/calculator"
	"windtunnel/geometry"
	"windtunnel/model"
)

// Loader hands the calculator already parsed arrays.
type Loader interface {
	LoadSensors() (model.SensorArray, error)
	LoadSamples(taps int) ([]model.PressureSample, error)
	LoadAirfoil() (*geometry.Airfoil, error)
	LoadWake() (velocity, pressure map[float64]model.Profile, err error)
}

// Build assembles a dataset. The airfoil and the wake survey are optional,
// a nil result from the loader leaves them empty.
func Build(l Loader, name string, ref model.ReferenceConditions, cpMode string) (*calculator.Dataset, error) {
	sensors, err := l.LoadSensors()
	if err != nil {
		return nil, err
	}
	samples, err := l.LoadSamples(sensors.Len())
	if err != nil {
		return nil, err
	}
	airfoil, err := l.LoadAirfoil()
	if err != nil {
		return nil, err
	}
	velocity, pressure, err := l.LoadWake()
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"dataset": name,
		"taps":    sensors.Len(),
		"samples": len(samples),
		"airfoil": airfoil != nil,
		"wake":    len(velocity),
	}).Info("dataset loaded")
	return &calculator.Dataset{
		Name:         name,
		Sensors:      sensors,
		Samples:      samples,
		Airfoil:      airfoil,
		Reference:    ref,
		CpMode:       cpMode,
		WakeVelocity: velocity,
		WakePressure: pressure,
	}, nil
}

// FileLoader reads the tables a manifest points at.
type FileLoader struct {
	m *Manifest
}

var _ Loader = (*FileLoader)(nil)

func NewFileLoader(m *Manifest) *FileLoader {
	return &FileLoader{m: m}
}

// Dataset loads every source of the manifest.
func (l *FileLoader) Dataset() (*calculator.Dataset, error) {
	return Build(l, l.m.Name, l.m.Reference, l.m.CpMode)
}

func (l *FileLoader) LoadSensors() (model.SensorArray, error) {
	src := l.m.Sources.Sensors
	xCol, err := column(src.XColumn, 1)
	if err != nil {
		return model.SensorArray{}, err
	}
	yCol, err := column(src.YColumn, 2)
	if err != nil {
		return model.SensorArray{}, err
	}
	rows, err := readRows(src.SheetRef)
	if err != nil {
		return model.SensorArray{}, err
	}
	firstRow := src.FirstRow
	if firstRow == 0 {
		firstRow = 3
	}

	var sensors model.SensorArray
	for _, row := range dataRows(rows, firstRow) {
		if src.Count > 0 && sensors.Len() == src.Count {
			break
		}
		x, y := cell(row, xCol), cell(row, yCol)
		if math.IsNaN(x) {
			if src.Count > 0 {
				return model.SensorArray{}, fmt.Errorf("sensor %d of %s has no x position", sensors.Len()+1, src.Path)
			}
			break
		}
		if src.PercentChord {
			x /= 100
		}
		sensors.X = append(sensors.X, x)
		sensors.Y = append(sensors.Y, y)
	}
	if sensors.Len() == 0 {
		return sensors, fmt.Errorf("no sensors in %s", src.Path)
	}
	return sensors, nil
}

// LoadSamples reads one PressureSample per log row. Cells that are not
// numbers become NaN; rows without a numeric angle are dropped.
func (l *FileLoader) LoadSamples(taps int) ([]model.PressureSample, error) {
	src := l.m.Sources.Pressures
	angleCol, err := column(src.AngleColumn, 2)
	if err != nil {
		return nil, err
	}
	refCol, err := column(src.ReferenceColumn, 3)
	if err != nil {
		return nil, err
	}
	tapCol, err := column(src.FirstTapColumn, 8)
	if err != nil {
		return nil, err
	}
	rows, err := readRows(src.SheetRef)
	if err != nil {
		return nil, err
	}
	firstRow := src.FirstRow
	if firstRow == 0 {
		firstRow = 3
	}

	var samples []model.PressureSample
	for i, row := range dataRows(rows, firstRow) {
		angle := cell(row, angleCol)
		if math.IsNaN(angle) {
			log.WithFields(log.Fields{
				"file": src.Path,
				"row":  firstRow + i,
			}).Warn("row without angle of attack skipped")
			continue
		}
		s := model.PressureSample{
			Angle:     angle,
			Reference: cell(row, refCol),
			Pressures: make([]float64, taps),
		}
		for t := 0; t < taps; t++ {
			s.Pressures[t] = cell(row, tapCol+t)
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no pressure samples in %s", src.Path)
	}
	return samples, nil
}

func (l *FileLoader) LoadAirfoil() (*geometry.Airfoil, error) {
	src := l.m.Sources.Geometry
	if src == nil {
		return nil, nil
	}
	firstRow, xDef, zDef := 2, 0, 1
	if src.isWorkbook() {
		firstRow, xDef, zDef = 3, 1, 2
	}
	if src.FirstRow > 0 {
		firstRow = src.FirstRow
	}
	xCol, err := column(src.XColumn, xDef)
	if err != nil {
		return nil, err
	}
	zCol, err := column(src.ZColumn, zDef)
	if err != nil {
		return nil, err
	}
	rows, err := readRows(src.SheetRef)
	if err != nil {
		return nil, err
	}
	var points []model.Point
	for _, row := range dataRows(rows, firstRow) {
		x, z := cell(row, xCol), cell(row, zCol)
		if math.IsNaN(x) || math.IsNaN(z) {
			continue
		}
		points = append(points, model.Point{X: x, Z: z})
	}
	a, err := geometry.Load(points)
	if err != nil {
		return nil, fmt.Errorf("airfoil %s: %w", src.Path, err)
	}
	return a, nil
}

func (l *FileLoader) LoadWake() (velocity, pressure map[float64]model.Profile, err error) {
	src := l.m.Sources.Wake
	if src == nil {
		return nil, nil, nil
	}
	if velocity, err = loadProfiles(src.Velocity); err != nil {
		return nil, nil, err
	}
	if src.Pressure != nil {
		if pressure, err = loadProfiles(*src.Pressure); err != nil {
			return nil, nil, err
		}
	}
	return velocity, pressure, nil
}

// loadProfiles reads a rake table into one profile per angle. Header cells
// that are not numbers (the angle label, blanks) are not locations.
func loadProfiles(src TableSource) (map[float64]model.Profile, error) {
	angleCol, err := column(src.AngleColumn, 0)
	if err != nil {
		return nil, err
	}
	rows, err := readRows(src.SheetRef)
	if err != nil {
		return nil, err
	}
	headerRow := src.HeaderRow
	if headerRow == 0 {
		headerRow = 1
	}
	if headerRow > len(rows) {
		return nil, fmt.Errorf("wake table %s has no header row %d", src.Path, headerRow)
	}
	header := rows[headerRow-1]
	locations := make(map[int]float64)
	for i := range header {
		if i == angleCol {
			continue
		}
		if loc := cell(header, i); !math.IsNaN(loc) {
			locations[i] = loc
		}
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("wake table %s: no locations in header row %d", src.Path, headerRow)
	}

	profiles := make(map[float64]model.Profile)
	for _, row := range dataRows(rows, headerRow+1+src.SkipRows) {
		angle := cell(row, angleCol)
		if math.IsNaN(angle) {
			continue
		}
		p := make(model.Profile, len(locations))
		for i, loc := range locations {
			if v := cell(row, i); !math.IsNaN(v) {
				p[loc] = v
			}
		}
		if _, dup := profiles[angle]; dup {
			log.WithFields(log.Fields{"file": src.Path, "angle": angle}).Warn("repeated angle in wake table, first row kept")
			continue
		}
		profiles[angle] = p
	}
	return profiles, nil
}

// LoadPolar reads alpha, CL, CD from the first three columns.
func LoadPolar(src CurveSource) ([]model.PolarPoint, error) {
	rows, err := readRows(src.SheetRef)
	if err != nil {
		return nil, err
	}
	var polar []model.PolarPoint
	for _, row := range dataRows(rows, src.SkipRows+1) {
		p := model.PolarPoint{Alpha: cell(row, 0), CL: cell(row, 1), CD: cell(row, 2)}
		if math.IsNaN(p.Alpha) || math.IsNaN(p.CL) || math.IsNaN(p.CD) {
			continue
		}
		polar = append(polar, p)
	}
	if len(polar) == 0 {
		return nil, fmt.Errorf("no polar rows in %s", src.Path)
	}
	return polar, nil
}

// LoadCpCurve reads x/c and Cp from the first two columns.
func LoadCpCurve(src CurveSource) ([]model.CpPoint, error) {
	rows, err := readRows(src.SheetRef)
	if err != nil {
		return nil, err
	}
	var curve []model.CpPoint
	for _, row := range dataRows(rows, src.SkipRows+1) {
		p := model.CpPoint{X: cell(row, 0), Cp: cell(row, 1)}
		if math.IsNaN(p.X) || math.IsNaN(p.Cp) {
			continue
		}
		curve = append(curve, p)
	}
	if len(curve) == 0 {
		return nil, fmt.Errorf("no cp rows in %s", src.Path)
	}
	return curve, nil
}
