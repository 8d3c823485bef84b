package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/GoWeddingSite/GoWeddingSite/internal/daemon"
	"github.com/GoWeddingSite/GoWeddingSite/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	rootCmd.AddCommand(startCmd)
}

var (
	devMode      bool
	browseStatic bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the wedding site web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(background(cmd), &cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

// background is used when a command runs without a context.
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
