package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/antoine/internal/cli"
	"github.com/aretw0/antoine/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and JSON API server",
	Long: `Serves the interactive dashboard at /, SVG charts under /charts, the JSON API
under /api, Prometheus metrics at /metrics and the OpenAPI document at /openapi.yaml.

With --watch, edits to the table are reloaded and pushed to open dashboards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		host, _ := cmd.Flags().GetString("host")
		watch, _ := cmd.Flags().GetBool("watch")
		purge, _ := cmd.Flags().GetBool("purge-cache")
		quiet, _ := cmd.Flags().GetBool("quiet")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		rt, err := newRuntime(sigCtx, cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := cli.ServeOptions{Watch: watch, PurgeCache: purge, Stdout: os.Stdout}
		if cmd.Flags().Changed("port") || cmd.Flags().Changed("host") {
			if !cmd.Flags().Changed("port") {
				port = rt.Config.Server.Port
			}
			if !cmd.Flags().Changed("host") {
				host = rt.Config.Server.Host
			}
			opts.Addr = fmt.Sprintf("%s:%d", host, port)
		}
		if quiet {
			opts.Stdout = nil
		} else {
			tui.PrintBanner(os.Stdout)
		}

		if err := cli.RunServe(sigCtx, rt, opts); err != nil {
			return err
		}
		if sig := sigCtx.Signal(); sig != nil {
			rt.Logger.Info("Stopped by signal", "signal", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8050, "Port to listen on (overrides server.port)")
	serveCmd.Flags().String("host", "", "Interface to bind (overrides server.host)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the table when it changes (Loam directories)")
	serveCmd.Flags().Bool("purge-cache", false, "Drop cached dashboards from Redis before serving")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and status lines")
}
