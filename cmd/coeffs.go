package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"windtunnel/model"
	"windtunnel/report"
)

var (
	coeffAngles []float64
	coeffPlots  bool
)

var coeffsCmd = &cobra.Command{
	Use:   "coeffs",
	Short: "Compute Cp, C_M, C_T and wake drag for every angle of attack",
	Long: `Compute the coefficients of every angle of attack of the campaign.

A failing angle does not stop the run, its error is reported in the
table and in coefficients.csv. Writes:
  coefficients.csv   alpha, c_m, c_t, drag, error
  cp.csv             Cp of every tap, one column per angle
  coefficients.png   C_M and C_T against alpha
  drag.png           wake drag against alpha, when a wake survey is given
  airfoil.png        contour scaled to unit chord, when a geometry is given
  cp_<alpha>.png     Cp distribution per angle, with --plots`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, c, err := loadCampaign()
		if err != nil {
			return err
		}
		angles := coeffAngles
		if len(angles) == 0 {
			angles = m.Angles
		}
		results := c.Run(angles)

		dir, err := outputDir(m.Name)
		if err != nil {
			return err
		}
		ds := c.Dataset()
		if err := writeResults(dir, ds.Sensors, results); err != nil {
			return err
		}
		if ds.Airfoil != nil {
			contour := ds.Airfoil.Normalized().Points()
			if err := report.PlotAirfoil(filepath.Join(dir, "airfoil.png"), m.Name, contour, plotSize()); err != nil {
				return err
			}
		}
		printResults(cmd, results)
		log.WithField("dir", dir).Info("results written")
		return nil
	},
}

func init() {
	coeffsCmd.Flags().Float64SliceVarP(&coeffAngles, "angles", "a", nil, "angles of attack to evaluate (default: manifest angles, then every angle)")
	coeffsCmd.Flags().BoolVar(&coeffPlots, "plots", false, "write a Cp distribution plot per angle")
	rootCmd.AddCommand(coeffsCmd)
}

func writeResults(dir string, sensors model.SensorArray, results []model.CoefficientResult) error {
	if err := report.WriteCoefficients(filepath.Join(dir, "coefficients.csv"), results, cfg.Precision); err != nil {
		return err
	}
	if err := report.WriteCpTable(filepath.Join(dir, "cp.csv"), sensors, results, cfg.Precision); err != nil {
		return err
	}

	var ok, withDrag int
	for _, r := range results {
		if r.Cp != nil {
			ok++
		}
		if r.Drag != 0 {
			withDrag++
		}
	}
	if ok == 0 {
		log.Warn("no angle succeeded, plots skipped")
		return nil
	}
	if err := report.PlotCoefficients(filepath.Join(dir, "coefficients.png"), results, plotSize()); err != nil {
		return err
	}
	if withDrag > 0 {
		if err := report.PlotDrag(filepath.Join(dir, "drag.png"), results, plotSize()); err != nil {
			return err
		}
	}
	if coeffPlots {
		for _, r := range results {
			if r.Cp == nil {
				continue
			}
			path := filepath.Join(dir, "cp_"+angleName(r.Angle)+".png")
			if err := report.PlotCpDistribution(path, sensors, r, plotSize()); err != nil {
				return err
			}
		}
	}
	return nil
}

func printResults(cmd *cobra.Command, results []model.CoefficientResult) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "alpha\tc_m\tc_t\tdrag\terror")
	for _, r := range results {
		if r.Cp == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", angleName(r.Angle), r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", angleName(r.Angle), ftoa(r.CM), ftoa(r.CT), ftoa(r.Drag), r.Err)
	}
	w.Flush()
}
