package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"windtunnel/adapter"
	"windtunnel/calculator"
	"windtunnel/config"
	"windtunnel/report"
)

var (
	configPath   string
	manifestPath string
	outDir       string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "windtunnel",
	Short: "Aerodynamic coefficients from 2D wind tunnel pressure data",
	Long: `Reduce the pressure tap and wake rake measurements of a 2D airfoil
wind tunnel entry to pressure, moment, tangential and drag coefficients.

The measured tables are described by a campaign manifest (YAML):

  name: naca0012
  reference: {q_inf: 335.76, p_inf: 99495.5, u_inf: 23.84, rho: 1.225}
  sources:
    sensors:   {path: PPS.xlsx, percent_chord: true}
    pressures: {path: raw_2d.txt}
    geometry:  {path: naca0012.dat}
    wake:
      velocity: {path: wake_velocity.csv}`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		return cfg.SetupLogging()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "ini configuration file")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "conf/campaign.yaml", "campaign manifest")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory (default <output.dir>/<name>-<run id>)")
}

func loadCampaign() (*adapter.Manifest, *calculator.DatasetCalculator, error) {
	m, err := adapter.LoadManifest(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	ds, err := adapter.NewFileLoader(m).Dataset()
	if err != nil {
		return nil, nil, err
	}
	return m, calculator.NewCalculator(ds), nil
}

// outputDir creates the directory the run writes into. Without --out every
// run gets its own directory named after the campaign and a short run id.
func outputDir(name string) (string, error) {
	dir := outDir
	if dir == "" {
		if name == "" {
			name = "campaign"
		}
		dir = filepath.Join(cfg.OutputDir, name+"-"+uuid.NewString()[:8])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return dir, nil
}

func plotSize() report.Size {
	return report.Size{Width: cfg.PlotWidth, Height: cfg.PlotHeight}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', cfg.Precision, 64)
}

func angleName(angle float64) string {
	return strconv.FormatFloat(angle, 'f', -1, 64)
}
