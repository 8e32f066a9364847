// merchctl renders, previews and inspects saved garment designs from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/merchkit/internal/config"
	"github.com/Faultbox/merchkit/internal/logger"
)

var (
	configPath string
	debug      bool
	quiet      bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "merchctl",
	Short: "Render and inspect garment designs",
	Long: `merchctl works with saved garment designs outside the studio.
It replays a design onto the garment texture, renders the flat preview,
reports which overlay records a design file would drop, and maps screen
points on the 3D view to texture coordinates.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output on stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	var file logger.FileConfig
	if cfg.Logging.LogFile != "" {
		file = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, file, !quiet)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
