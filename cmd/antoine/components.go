package main

import (
	"github.com/aretw0/antoine/internal/cli"
	"github.com/spf13/cobra"
)

var componentsCmd = &cobra.Command{
	Use:     "components",
	Aliases: []string{"ls"},
	Short:   "List the components and their Antoine coefficients",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.RunComponents(rt, output(cmd))
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}
