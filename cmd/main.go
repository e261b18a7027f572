package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "aquafeed/docs"

	"github.com/spf13/cobra"
)

// @title                       AquaFeed API
// @version                     1.0
// @description                 Simulated aquarium monitor: sensor readings, threshold alerts and a remote fish feeder.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "aquafeed",
	Short: "Aquarium monitor and feeder simulation",
	Long: `aquafeed simulates an aquarium controller: it polls synthetic pH and
temperature sensors, raises alerts outside the safe bands and drives a remote
feeder. Without a subcommand it behaves like "aquafeed serve".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level: debug|info|warn|error")
	rootCmd.AddCommand(serveCmd, watchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
