package cmd

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"windtunnel/adapter"
	"windtunnel/model"
	"windtunnel/report"
)

var (
	cpAngle float64
	cpTaps  []int
)

var cpCmd = &cobra.Command{
	Use:   "cp",
	Short: "Pressure coefficient distribution at one angle of attack",
	Long: `Print the Cp of every tap at --angle and plot it against x/c.

Cp curves listed under sources.cp_curves (XFOIL .cp dumps) are drawn on
top of the measured distribution. --taps plots the Cp of the given taps
(1 based) against every recorded angle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, c, err := loadCampaign()
		if err != nil {
			return err
		}
		cp, err := c.Cp(cpAngle)
		if err != nil {
			return err
		}
		sensors := c.Dataset().Sensors

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "sensor\tx\ty\tcp")
		for i := range cp {
			if i >= sensors.Len() {
				break
			}
			fmt.Fprintf(out, "P%03d\t%s\t%s\t%s\n", i+1, ftoa(sensors.X[i]), ftoa(sensors.Y[i]), ftoa(cp[i]))
		}

		dir, err := outputDir(m.Name)
		if err != nil {
			return err
		}
		curves, err := cpCurves(m, sensors, cp)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "cp_"+angleName(cpAngle)+".png")
		if err := report.PlotCpCurves(path, curves, plotSize()); err != nil {
			return err
		}

		if len(cpTaps) > 0 {
			taps := make([]int, 0, len(cpTaps))
			for _, t := range cpTaps {
				if t < 1 || t > sensors.Len() {
					return fmt.Errorf("tap %d out of range 1..%d", t, sensors.Len())
				}
				taps = append(taps, t-1)
			}
			var results []model.CoefficientResult
			for _, angle := range c.Angles() {
				cp, err := c.Cp(angle)
				if err != nil {
					log.WithField("angle", angle).Warn(err)
					continue
				}
				results = append(results, model.CoefficientResult{Angle: angle, Cp: cp})
			}
			if err := report.PlotTapHistory(filepath.Join(dir, "cp_taps.png"), taps, results, plotSize()); err != nil {
				return err
			}
		}
		log.WithField("dir", dir).Info("cp written")
		return nil
	},
}

func init() {
	cpCmd.Flags().Float64VarP(&cpAngle, "angle", "a", 0, "angle of attack")
	cpCmd.Flags().IntSliceVar(&cpTaps, "taps", nil, "taps to follow over alpha, 1 based")
	rootCmd.AddCommand(cpCmd)
}

// cpCurves returns the measured upper and lower surfaces followed by every
// reference curve of the manifest.
func cpCurves(m *adapter.Manifest, sensors model.SensorArray, cp []float64) ([]report.Series, error) {
	upper := report.Series{Label: "upper"}
	lower := report.Series{Label: "lower"}
	for i := 0; i < len(cp) && i < sensors.Len(); i++ {
		switch {
		case sensors.Y[i] > 0:
			upper.X, upper.Y = append(upper.X, sensors.X[i]), append(upper.Y, cp[i])
		case sensors.Y[i] < 0:
			lower.X, lower.Y = append(lower.X, sensors.X[i]), append(lower.Y, cp[i])
		}
	}
	curves := []report.Series{upper, lower}
	for _, src := range m.Sources.CpCurves {
		points, err := adapter.LoadCpCurve(src)
		if err != nil {
			return nil, err
		}
		s := report.Series{Label: src.Label}
		if s.Label == "" {
			s.Label = filepath.Base(src.Path)
		}
		for _, p := range points {
			s.X, s.Y = append(s.X, p.X), append(s.Y, p.Cp)
		}
		curves = append(curves, s)
	}
	return curves, nil
}
