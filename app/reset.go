package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoWeddingSite/GoWeddingSite/internal/daemon"
	"github.com/GoWeddingSite/GoWeddingSite/internal/logger"
)

// ErrResetNotConfirmed is returned when reset runs without --yes.
var ErrResetNotConfirmed = errors.New("reset deletes every gift, page and message: rerun with --yes")

func init() { //nolint: gochecknoinits
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm the reset")

	rootCmd.AddCommand(resetCmd)
}

var (
	resetConfirmed bool

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Put the site back to its starting content",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if !resetConfirmed {
				return ErrResetNotConfirmed
			}

			if err := readConfig(); err != nil {
				return err
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := daemon.Reset(background(cmd), &cfg); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "site reset to defaults")

			return err
		},
	}
)
