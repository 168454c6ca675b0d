package main

import (
	"github.com/aretw0/antoine/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [table]",
	Short: "Check the coefficient table",
	Long: `Loads the table and reports parse errors, or the components whose vapor
pressure is not finite over the default dashboard range.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := cmd.Flags().Set("table", args[0]); err != nil {
				return err
			}
		}
		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.RunValidate(cmd.Context(), rt, output(cmd))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
