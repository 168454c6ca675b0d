package main

import (
	"github.com/aretw0/antoine/internal/cli"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a Mermaid graph of pair separations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pressure, _ := cmd.Flags().GetFloat64("pressure")
		var pair domain.Pair
		if key, _ := cmd.Flags().GetString("pair"); key != "" {
			var err error
			if pair, err = domain.ParsePair(key); err != nil {
				return err
			}
		}

		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.RunGraph(cmd.Context(), rt, output(cmd), pressure, pair)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Float64P("pressure", "P", domain.DefaultPtarget, "Pressure (kPa)")
	graphCmd.Flags().String("pair", "", "Highlighted pair as First|Second")
}
