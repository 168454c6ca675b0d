package main

import (
	"github.com/aretw0/antoine/internal/cli"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [first second]",
	Short: "Compare the boiling temperatures of two components",
	Long: `Prints the absolute boiling temperature difference of a pair at --pressure kPa.
Without arguments the first two components of the table are compared.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return cobra.ExactArgs(2)(cmd, args)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		pressure, _ := cmd.Flags().GetFloat64("pressure")
		sweep, _ := cmd.Flags().GetBool("sweep")

		var pair domain.Pair
		if len(args) == 2 {
			pair = domain.Pair{First: args[0], Second: args[1]}
		}

		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.RunCompare(cmd.Context(), rt, output(cmd), pair, pressure, sweep)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Float64P("pressure", "P", domain.DefaultPtarget, "Pressure (kPa)")
	compareCmd.Flags().Bool("sweep", false, "Also summarize the difference from 10 to 5000 kPa")
}
