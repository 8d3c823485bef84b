// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoWeddingSite/GoWeddingSite/internal/config"
)

var (
	configPath string // Path to the configuration directory

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "go-wedding-site",
	Short: "go-wedding-site serves a wedding website with a gift registry",
	Long: `go-wedding-site serves a wedding website with a gift registry: public pages,
gifts paid by PIX or card link, recorded greetings from guests and a panel
for the couple to manage it all.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory holding main.toml")
}

// readConfig loads the configuration named by --config.
func readConfig() error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
