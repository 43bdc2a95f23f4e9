package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/peakpick-cli/internal/config"
	"github.com/KaramelBytes/peakpick-cli/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// logger is built from cfg once it is loaded
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "peakpick",
	Short: "PeakPick: find the quietest hard climb among Colorado's 14ers",
	Long: `PeakPick loads the Colorado 14ers dataset, derives traffic and elevation metrics,
charts the data, and picks the least visited class 4 mountain, then fetches its photo.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.peakpick/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to loading on demand
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// ensureConfig loads configuration if OnInitialize did not, and builds the logger.
func ensureConfig() error {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	}
	if logger == nil {
		level := cfg.LogLevel
		if debug {
			level = "debug"
		}
		l, err := logging.New(level, cfg.LogFormat)
		if err != nil {
			return err
		}
		logger = l
	}
	return nil
}
