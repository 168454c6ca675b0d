package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/antoine"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of antoine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("antoine version %s\n", strings.TrimSpace(antoine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
