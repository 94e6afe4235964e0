package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/alexiusacademia/gosfd/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/calc          {"length":"10","load":"100","position":"5"}
  GET  /api/diagram.png   ?length=10&load=100&position=5
  POST /api/report/pdf    same body plus "project" and "author"
  POST /api/export/xlsx   same body
  POST /api/batch         multipart form with an .xlsx "file"
  GET  /healthz

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  gosfd serve
  gosfd serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", cfg.Server.Addr)
		return server.New(cfg, logger.L()).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, default from config (:8080)")
}
