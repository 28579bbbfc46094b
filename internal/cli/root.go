// Package cli holds the eko command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/eko/internal/catalog"
	"github.com/llehouerou/eko/internal/config"
	"github.com/llehouerou/eko/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "eko",
	Short:         "eko plays guided meditations, soundscapes and yoga sessions in the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: XDG config dir, then ./config.toml)")
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// consoleLogger is used by subcommands that do not own the terminal.
func consoleLogger(cfg *config.Config) zerolog.Logger {
	log, _, err := logging.Init(logging.Config{Level: cfg.Log.Level, Console: true})
	if err != nil {
		return zerolog.Nop()
	}
	return log
}

// openCatalog opens the configured catalog, or catalog.yaml next to the
// config file when none is set.
func openCatalog(cfg *config.Config) (*catalog.FileSource, error) {
	path := cfg.Catalog.Path
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "eko", "catalog.yaml")
	}
	src, err := catalog.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open catalog %s", path)
	}
	return src, nil
}
