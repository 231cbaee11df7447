package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/godefects/internal/config"
	"github.com/philipparndt/godefects/internal/logging"
	"github.com/philipparndt/godefects/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    = config.Default()
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "godefects",
	Short: "Inspect sampled CAD faces and apply random manufacturing defects",
	Long: `godefects works on point samples of boundary faces. It lists and inspects
the samples, displaces the points of one face by a bounded random offset,
renders the cloud to PNG and reloads files when they change.

Supported inputs are .pcs sample files, STL meshes and .json snapshots.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}

		l, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "godefects.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
