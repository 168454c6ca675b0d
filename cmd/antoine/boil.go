package main

import (
	"github.com/aretw0/antoine/internal/cli"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/spf13/cobra"
)

var boilCmd = &cobra.Command{
	Use:   "boil [component...]",
	Short: "Find boiling temperatures at a pressure",
	Long:  `Prints the boiling temperature of the given components, or of every component, at --pressure kPa.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pressure, _ := cmd.Flags().GetFloat64("pressure")

		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.RunBoil(cmd.Context(), rt, output(cmd), args, pressure)
	},
}

func init() {
	rootCmd.AddCommand(boilCmd)
	boilCmd.Flags().Float64P("pressure", "P", domain.DefaultPtarget, "Pressure (kPa)")
}
