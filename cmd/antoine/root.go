package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/antoine/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "antoine",
	Short: "Antoine explores vapor pressure and boiling temperatures",
	Long: `Antoine evaluates the extended Antoine equation
ln(P) = A + B/(T+C) + D*ln(T) + E*T^F
for a table of components: vapor pressure curves, boiling temperatures,
pair separation and an interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default antoine.yaml when present)")
	rootCmd.PersistentFlags().String("table", "", "Coefficient table: TSV file, YAML/JSON catalog or Loam directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")
}

func globalOptions(cmd *cobra.Command) cli.Options {
	configFile, _ := cmd.Flags().GetString("config")
	table, _ := cmd.Flags().GetString("table")
	debug, _ := cmd.Flags().GetBool("debug")
	jsonMode, _ := cmd.Flags().GetBool("json")
	return cli.Options{ConfigFile: configFile, Table: table, Debug: debug, JSON: jsonMode}
}

// newRuntime builds the engine from config and flags. Callers must Close it.
func newRuntime(ctx context.Context, cmd *cobra.Command, withMetrics bool) (*cli.Runtime, error) {
	return cli.NewRuntime(ctx, globalOptions(cmd), withMetrics)
}

func output(cmd *cobra.Command) cli.Output {
	return cli.NewOutput(os.Stdout, globalOptions(cmd).JSON)
}
