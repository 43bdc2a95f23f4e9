package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/peakpick-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set PeakPick configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_file: %s\n", cfg.DataFile)
		fmt.Fprintf(out, "image_file: %s\n", cfg.ImageFile)
		if cfg.ChartDir != "" {
			fmt.Fprintf(out, "chart_dir: %s\n", cfg.ChartDir)
		} else {
			fmt.Fprintln(out, "chart_dir: (temp dir per run)")
		}
		fmt.Fprintf(out, "show_charts: %t\n", cfg.ShowCharts)
		fmt.Fprintf(out, "open_image: %t\n", cfg.OpenImage)
		fmt.Fprintf(out, "fourteeners_only: %t\n", cfg.FourteenersOnly)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if !cfgpkg.IsKey(key) {
			return fmt.Errorf("unknown key: %s (known: %v)", key, cfgpkg.Keys())
		}
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_file":
			cfg.DataFile = val
		case "image_file":
			cfg.ImageFile = val
		case "chart_dir":
			cfg.ChartDir = val
		case "show_charts", "open_image", "fourteeners_only":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			switch key {
			case "show_charts":
				cfg.ShowCharts = b
			case "open_image":
				cfg.OpenImage = b
			default:
				cfg.FourteenersOnly = b
			}
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		case "log_format":
			switch val {
			case "console", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
