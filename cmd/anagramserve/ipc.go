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

var ipcCmd = &cobra.Command{
	Use:   "ipc",
	Short: "Serve msgpack requests over stdin/stdout",
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(cmd)
		defer a.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.NewIPCServer(a.service).Start(ctx); err != nil {
			log.Fatalf("IPC server error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(ipcCmd)
}
