package calculator

import (
	"fmt"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"windtunnel/geometry"
	"windtunnel/metrics"
	"windtunnel/model"
)

// Calculator evaluates the coefficients of one dataset.
type Calculator interface {
	// angles of attack in recording order, duplicates removed
	Angles() []float64

	// single angle
	Cp(angle float64) ([]float64, error)
	PitchingMoment(angle float64) (float64, error)
	Tangential(angle float64) (float64, error)
	Drag(angle float64) (float64, error)

	// every angle independently, failures are kept in the results
	Run(angles []float64) []model.CoefficientResult
}

// Dataset is everything measured in one tunnel entry.
type Dataset struct {
	Name      string
	Sensors   model.SensorArray
	Samples   []model.PressureSample
	Airfoil   *geometry.Airfoil // optional, needed for C_T
	Reference model.ReferenceConditions
	CpMode    string

	// wake rake profiles by angle of attack, optional
	WakeVelocity map[float64]model.Profile
	WakePressure map[float64]model.Profile
}

var _ Calculator = (*DatasetCalculator)(nil)

type DatasetCalculator struct {
	ds *Dataset
}

func NewCalculator(ds *Dataset) *DatasetCalculator {
	return &DatasetCalculator{ds: ds}
}

func (c *DatasetCalculator) Dataset() *Dataset {
	return c.ds
}

func (c *DatasetCalculator) Angles() []float64 {
	seen := make(map[float64]bool, len(c.ds.Samples))
	angles := make([]float64, 0, len(c.ds.Samples))
	for _, s := range c.ds.Samples {
		if math.IsNaN(s.Angle) || seen[s.Angle] {
			continue
		}
		seen[s.Angle] = true
		angles = append(angles, s.Angle)
	}
	return angles
}

func (c *DatasetCalculator) Cp(angle float64) ([]float64, error) {
	sample, err := SelectSample(c.ds.Samples, angle)
	if err != nil {
		return nil, err
	}
	return CpSeries(sample, c.ds.Reference.QInf, c.ds.CpMode)
}

func (c *DatasetCalculator) PitchingMoment(angle float64) (float64, error) {
	cp, err := c.Cp(angle)
	if err != nil {
		return 0, err
	}
	return PitchingMomentArea(cp, c.ds.Sensors.Y, c.ds.Sensors.X)
}

func (c *DatasetCalculator) Tangential(angle float64) (float64, error) {
	cp, err := c.Cp(angle)
	if err != nil {
		return 0, err
	}
	return TangentialCoefficient(cp, c.ds.Airfoil, c.ds.Sensors.X, c.ds.Sensors.Y)
}

func (c *DatasetCalculator) Drag(angle float64) (float64, error) {
	velocity, ok := c.ds.WakeVelocity[angle]
	if !ok {
		return 0, fmt.Errorf("wake profile at angle %g: %w", angle, ErrAngleNotFound)
	}
	ref := c.ds.Reference
	return WakeDrag(velocity, c.ds.WakePressure[angle], ref.UInf, ref.PInf, ref.Rho)
}

// Run evaluates each angle on its own. An empty list means every angle of
// the dataset. C_T is only computed with an airfoil, drag only for angles
// the wake survey covers.
func (c *DatasetCalculator) Run(angles []float64) []model.CoefficientResult {
	if len(angles) == 0 {
		angles = c.Angles()
	}
	start := time.Now()
	results := make([]model.CoefficientResult, 0, len(angles))
	failed := 0
	for _, angle := range angles {
		r := c.runOne(angle)
		if r.Failed() {
			failed++
			log.WithFields(log.Fields{
				"dataset": c.ds.Name,
				"angle":   angle,
			}).Error(r.Err)
		}
		results = append(results, r)
	}
	log.WithFields(log.Fields{
		"dataset": c.ds.Name,
		"angles":  len(angles),
		"failed":  failed,
	}).Info("coefficients computed")
	metrics.RecordRun("coeffs", time.Since(start), len(angles)-failed, failed)
	return results
}

func (c *DatasetCalculator) runOne(angle float64) model.CoefficientResult {
	r := model.CoefficientResult{Angle: angle}
	var errs []error

	cp, err := c.Cp(angle)
	if err != nil {
		r.Err = err.Error()
		return r
	}
	r.Cp = cp

	if r.CM, err = PitchingMomentArea(cp, c.ds.Sensors.Y, c.ds.Sensors.X); err != nil {
		errs = append(errs, fmt.Errorf("c_m: %w", err))
	}
	if c.ds.Airfoil != nil {
		if r.CT, err = TangentialCoefficient(cp, c.ds.Airfoil, c.ds.Sensors.X, c.ds.Sensors.Y); err != nil {
			errs = append(errs, fmt.Errorf("c_t: %w", err))
		}
	}
	if _, ok := c.ds.WakeVelocity[angle]; ok {
		if r.Drag, err = c.Drag(angle); err != nil {
			errs = append(errs, fmt.Errorf("drag: %w", err))
		}
	} else if len(c.ds.WakeVelocity) > 0 {
		log.WithField("angle", angle).Debug("no wake survey at this angle")
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		r.Err = strings.Join(msgs, "; ")
	}
	return r
}
