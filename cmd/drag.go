package cmd

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Wake drag for every angle of the rake survey",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, err := loadCampaign()
		if err != nil {
			return err
		}
		wake := c.Dataset().WakeVelocity
		if len(wake) == 0 {
			return fmt.Errorf("manifest %s has no wake survey", manifestPath)
		}
		angles := make([]float64, 0, len(wake))
		for a := range wake {
			angles = append(angles, a)
		}
		sort.Float64s(angles)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "alpha\tdrag")
		for _, a := range angles {
			d, err := c.Drag(a)
			if err != nil {
				log.WithField("angle", a).Error(err)
				fmt.Fprintf(out, "%s\t-\n", angleName(a))
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", angleName(a), ftoa(d))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dragCmd)
}
