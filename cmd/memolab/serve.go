package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/memolab/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive lessons",
		Long: `Serve the useCallback and useMemo lessons over HTTP.

Every button press runs one render pass on the server. Open pages are
notified over WebSocket and reload with the new render counts.

Examples:
  memolab serve
  memolab serve --port=8080
  memolab serve --host=0.0.0.0 --config=memolab.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags, port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, port int, host string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	srv, err := server.New(cfg, server.Options{Logger: newLogger(cfg, os.Stderr)})
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Lessons mounted: %d", len(srv.Catalog().All()))
	info("Open %s", cfg.URL())
	if cfg.Metrics.Enabled {
		info("Metrics at %s%s", cfg.URL(), cfg.Metrics.Path)
	}
	fmt.Println()

	if ctx == nil {
		ctx = context.Background()
	}
	return srv.Run(ctx)
}
