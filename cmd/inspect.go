package cmd

import (
	"fmt"

	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/KaramelBytes/peakpick-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	inspectOutputPath string
	inspectEnrich     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <csv>",
	Short: "Load a 14ers CSV and print a summary of its columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds, err := dataset.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		if inspectEnrich {
			ds, err = dataset.Enrich(ds)
			if err != nil {
				return fmt.Errorf("enrich: %w", err)
			}
		}
		summary := ds.Info().String()

		// Decide where to write: --output path or stdout
		if inspectOutputPath != "" {
			if err := utils.SafeWriteFile(inspectOutputPath, []byte(summary)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", inspectOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectOutputPath, "output", "o", "", "optional path to write the summary")
	inspectCmd.Flags().BoolVar(&inspectEnrich, "enrich", false, "summarize the derived columns too")
}
