package main

import (
	"github.com/aretw0/antoine/internal/cli"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/spf13/cobra"
)

var curveCmd = &cobra.Command{
	Use:   "curve <component>",
	Short: "Tabulate the vapor pressure of a component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmin, _ := cmd.Flags().GetFloat64("tmin")
		tmax, _ := cmd.Flags().GetFloat64("tmax")
		points, _ := cmd.Flags().GetInt("points")
		stride, _ := cmd.Flags().GetInt("every")

		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.RunCurve(cmd.Context(), rt, output(cmd), args[0], tmin, tmax, points, stride)
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
	curveCmd.Flags().Float64("tmin", domain.DefaultTmin, "Lower temperature (K)")
	curveCmd.Flags().Float64("tmax", domain.DefaultTmax, "Upper temperature (K)")
	curveCmd.Flags().Int("points", 31, "Number of samples")
	curveCmd.Flags().Int("every", 1, "Print every n-th sample (the last one is always printed)")
}
