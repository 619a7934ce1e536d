package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/bastiangx/anagramserve/internal/cli"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Try queries interactively",
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(cmd)
		defer a.close()

		limit := a.config.CLI.DefaultLimit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := cli.NewInputHandler(a.service, a.dict, limit).Start(ctx); err != nil {
			log.Errorf("CLI error: %v", err)
		}
	},
}

func init() {
	cliCmd.Flags().Int("limit", 0, "Number of phrases to print per query (0 for all)")
	rootCmd.AddCommand(cliCmd)
}
