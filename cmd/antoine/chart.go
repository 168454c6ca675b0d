package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/antoine/internal/cli"
	"github.com/aretw0/antoine/pkg/chart"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart <pressure|boiling|separation|sweep>",
	Short: "Render a dashboard chart as SVG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := chart.ParseKind(args[0])
		if err != nil {
			return err
		}
		params := domain.DefaultParams()
		params.Tmin, _ = cmd.Flags().GetFloat64("tmin")
		params.Tmax, _ = cmd.Flags().GetFloat64("tmax")
		params.Ptarget, _ = cmd.Flags().GetFloat64("ptarget")
		if cmd.Flags().Changed("components") {
			params.Components, _ = cmd.Flags().GetStringArray("components")
		}
		if key, _ := cmd.Flags().GetString("pair"); key != "" {
			if params.Pair, err = domain.ParsePair(key); err != nil {
				return err
			}
		}
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		outPath, _ := cmd.Flags().GetString("output")

		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		var w io.Writer = os.Stdout
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}
		return cli.RunChart(cmd.Context(), rt, w, kind, params, width, height)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().Float64("tmin", domain.DefaultTmin, "Lower temperature of the pressure chart (K)")
	chartCmd.Flags().Float64("tmax", domain.DefaultTmax, "Upper temperature of the pressure chart (K)")
	chartCmd.Flags().Float64("ptarget", domain.DefaultPtarget, "Target pressure (kPa)")
	chartCmd.Flags().StringArray("components", nil, "Selected component, repeat for several (default all)")
	chartCmd.Flags().String("pair", "", "Compared pair as First|Second (default the first two components)")
	chartCmd.Flags().Int("width", chart.DefaultWidth, "Image width (px)")
	chartCmd.Flags().Int("height", chart.DefaultHeight, "Image height (px)")
	chartCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
