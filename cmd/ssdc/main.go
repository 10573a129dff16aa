package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ssdcollector/internal/app"
	"ssdcollector/internal/catalog"
	"ssdcollector/internal/cli"
	"ssdcollector/internal/config"
	"ssdcollector/internal/logger"
)

func main() {
	cfg := config.Load()

	// the CLI only logs warnings so command output stays readable
	log, err := logger.New("warn", "console", "ssdc")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	load := func(ctx context.Context) (*cli.Services, func(), error) {
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return &cli.Services{Pending: a.Pending, Sync: a.Sync, Backup: a.Backup}, a.Close, nil
	}

	rootCmd := &cobra.Command{
		Use:   "ssdc",
		Short: "ssdc - SSD assessment collector tools",
		Long: `ssdc inspects the assessment catalog and manages finalized sessions
waiting to be uploaded. Run the HTTP API with the server binary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.CatalogCmd(catalog.Default()))
	rootCmd.AddCommand(cli.PendingCmd(load))
	rootCmd.AddCommand(cli.BackupCmd(load))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
