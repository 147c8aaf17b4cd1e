package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"windtunnel/model"
)

// Size of a saved figure in inches.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) save(p *plot.Plot, path string) error {
	if err := p.Save(vg.Length(s.Width)*vg.Inch, vg.Length(s.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// Series is one labelled curve.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

func (s Series) xys() plotter.XYs {
	n := min(len(s.X), len(s.Y))
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(s.X[i]) || math.IsNaN(s.Y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	return pts
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func addLines(p *plot.Plot, series []Series) error {
	args := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		args = append(args, s.Label, s.xys())
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("plotting failed: %w", err)
	}
	return nil
}

// invertCp flips the y axis so suction (negative Cp) points up.
func invertCp(p *plot.Plot) {
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
}

// PlotCpDistribution draws upper and lower surface Cp against x/c for one angle.
func PlotCpDistribution(path string, sensors model.SensorArray, r model.CoefficientResult, size Size) error {
	var upper, lower Series
	upper.Label, lower.Label = "upper", "lower"
	for i := 0; i < sensors.Len() && i < len(r.Cp); i++ {
		switch {
		case sensors.Y[i] > 0:
			upper.X = append(upper.X, sensors.X[i])
			upper.Y = append(upper.Y, r.Cp[i])
		case sensors.Y[i] < 0:
			lower.X = append(lower.X, sensors.X[i])
			lower.Y = append(lower.Y, r.Cp[i])
		}
	}
	p := newPlot(fmt.Sprintf("Cp vs x/c, alpha = %g deg", r.Angle), "x/c [-]", "Cp [-]")
	invertCp(p)
	if err := addLines(p, []Series{upper, lower}); err != nil {
		return err
	}
	return size.save(p, path)
}

// PlotCoefficients draws C_M and C_T (and drag when present) against alpha.
func PlotCoefficients(path string, results []model.CoefficientResult, size Size) error {
	cm := Series{Label: "C_M"}
	ct := Series{Label: "C_T"}
	for _, r := range results {
		if r.Cp == nil {
			continue
		}
		cm.X, cm.Y = append(cm.X, r.Angle), append(cm.Y, r.CM)
		ct.X, ct.Y = append(ct.X, r.Angle), append(ct.Y, r.CT)
	}
	if len(cm.X) == 0 {
		return fmt.Errorf("plot %s: no successful angle", path)
	}
	p := newPlot("Coefficients vs angle of attack", "alpha [deg]", "coefficient [-]")
	if err := addLines(p, []Series{cm, ct}); err != nil {
		return err
	}
	return size.save(p, path)
}

// PlotDrag draws wake drag against alpha.
func PlotDrag(path string, results []model.CoefficientResult, size Size) error {
	d := Series{Label: "wake drag"}
	for _, r := range results {
		if r.Drag != 0 {
			d.X, d.Y = append(d.X, r.Angle), append(d.Y, r.Drag)
		}
	}
	if len(d.X) == 0 {
		return fmt.Errorf("plot %s: no drag values", path)
	}
	p := newPlot("Wake drag", "alpha [deg]", "D [N/m]")
	if err := addLines(p, []Series{d}); err != nil {
		return err
	}
	return size.save(p, path)
}

// Polar is a labelled polar for the overlay plots.
type Polar struct {
	Label  string
	Points []model.PolarPoint
}

// PlotPolars writes the CL-alpha curve and the drag polar of every polar
// into clAlphaPath and dragPolarPath.
func PlotPolars(clAlphaPath, dragPolarPath string, polars []Polar, size Size) error {
	var clAlpha, dragPolar []Series
	for _, pl := range polars {
		a := Series{Label: pl.Label}
		d := Series{Label: pl.Label}
		for _, pt := range pl.Points {
			a.X, a.Y = append(a.X, pt.Alpha), append(a.Y, pt.CL)
			d.X, d.Y = append(d.X, pt.CD), append(d.Y, pt.CL)
		}
		clAlpha = append(clAlpha, a)
		dragPolar = append(dragPolar, d)
	}

	p := newPlot("Cl alfa curve", "alfa [deg]", "CL [-]")
	if err := addLines(p, clAlpha); err != nil {
		return err
	}
	if err := size.save(p, clAlphaPath); err != nil {
		return err
	}

	p = newPlot("Drag polar", "CD [-]", "CL [-]")
	if err := addLines(p, dragPolar); err != nil {
		return err
	}
	return size.save(p, dragPolarPath)
}

// PlotCpCurves overlays Cp distributions, e.g. experiment against XFOIL.
func PlotCpCurves(path string, curves []Series, size Size) error {
	p := newPlot("Cp vs x/c", "x/c [-]", "Cp [-]")
	invertCp(p)
	if err := addLines(p, curves); err != nil {
		return err
	}
	return size.save(p, path)
}

// PlotTapHistory draws Cp of the given taps (0 based) against alpha.
func PlotTapHistory(path string, taps []int, results []model.CoefficientResult, size Size) error {
	series := make([]Series, 0, len(taps))
	for _, tap := range taps {
		s := Series{Label: fmt.Sprintf("P%03d", tap+1)}
		for _, r := range results {
			if tap < len(r.Cp) {
				s.X, s.Y = append(s.X, r.Angle), append(s.Y, r.Cp[tap])
			}
		}
		series = append(series, s)
	}
	p := newPlot("Variation of Cp with alpha", "alpha [deg]", "Cp [-]")
	if err := addLines(p, series); err != nil {
		return err
	}
	return size.save(p, path)
}

// PlotAirfoil draws a contour in chord units.
func PlotAirfoil(path, name string, contour []model.Point, size Size) error {
	s := Series{Label: name}
	for _, pt := range contour {
		s.X, s.Y = append(s.X, pt.X), append(s.Y, pt.Z)
	}
	p := newPlot(name, "x/c [-]", "z/c [-]")
	if err := addLines(p, []Series{s}); err != nil {
		return err
	}
	return size.save(p, path)
}
