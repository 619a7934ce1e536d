package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/anagramserve/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves GET /anagram?q=<query> with a JSON array of phrases, plus /words/{word}, /health and /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(cmd)
		defer a.close()

		addr := a.config.Server.Addr()
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.NewHTTPServer(a.service, addr, a.config.Server.ShutdownTimeout())
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address, overrides listen_address and listen_port")
	rootCmd.AddCommand(serveCmd)
}
