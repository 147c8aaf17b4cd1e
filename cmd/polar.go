package cmd

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"windtunnel/adapter"
	"windtunnel/report"
)

var polarCmd = &cobra.Command{
	Use:   "polar",
	Short: "Overlay the CL-alpha curves and drag polars of the manifest",
	Long: `Plot every polar listed under sources.polars (XFOIL polar dumps or
balance measurements with alpha, CL, CD columns) into cl_alpha.png and
drag_polar.png.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := adapter.LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		if len(m.Sources.Polars) == 0 {
			return fmt.Errorf("manifest %s lists no polars", manifestPath)
		}
		polars := make([]report.Polar, 0, len(m.Sources.Polars))
		for _, src := range m.Sources.Polars {
			points, err := adapter.LoadPolar(src)
			if err != nil {
				return err
			}
			label := src.Label
			if label == "" {
				label = filepath.Base(src.Path)
			}
			polars = append(polars, report.Polar{Label: label, Points: points})
		}
		dir, err := outputDir(m.Name)
		if err != nil {
			return err
		}
		err = report.PlotPolars(filepath.Join(dir, "cl_alpha.png"), filepath.Join(dir, "drag_polar.png"), polars, plotSize())
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"dir": dir, "polars": len(polars)}).Info("polars written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(polarCmd)
}
