package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/peakpick-cli/internal/analysis"
	"github.com/KaramelBytes/peakpick-cli/internal/chart"
	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/KaramelBytes/peakpick-cli/internal/present"
	"github.com/KaramelBytes/peakpick-cli/internal/utils"
	"github.com/KaramelBytes/peakpick-cli/internal/viewer"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runNoCharts bool
	runNoOpen   bool
	runImage    string
	runChartDir string
	runAllPeaks bool
)

// openViewer shows charts and the photo; tests swap it out.
var openViewer viewer.Opener = viewer.System{}

var runCmd = &cobra.Command{
	Use:   "run [csv]",
	Short: "Chart the 14ers dataset and pick the perfect mountain",
	Long: `Load the 14ers CSV, derive traffic and elevation metrics, draw the prominence,
elevation and difficulty charts, select the least visited class 4 mountain, print it,
and download and open its photo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		path := cfg.DataFile
		if len(args) == 1 {
			path = args[0]
		}
		showCharts := cfg.ShowCharts && !runNoCharts
		openFiles := !runNoOpen
		fourteenersOnly := cfg.FourteenersOnly && !runAllPeaks
		imagePath := cfg.ImageFile
		if runImage != "" {
			imagePath = runImage
		}
		var err error
		if path, err = utils.ExpandHome(path); err != nil {
			return err
		}
		if imagePath, err = utils.ExpandHome(imagePath); err != nil {
			return err
		}

		runID := uuid.NewString()
		log := logger.With(zap.String("run_id", runID))
		out := cmd.OutOrStdout()

		ds, err := dataset.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		log.Info("dataset loaded", zap.String("file", path), zap.Int("rows", ds.Rows()), zap.Int("columns", len(ds.Columns())))
		fmt.Fprintln(out, ds.Info().String())

		enriched, err := dataset.Enrich(ds)
		if err != nil {
			return fmt.Errorf("enrich: %w", err)
		}

		a := &analysis.Analyzer{FourteenersOnly: fourteenersOnly, Logger: log}
		if showCharts {
			dir := runChartDir
			if dir == "" {
				dir = cfg.ChartDir
			}
			if dir == "" {
				dir = filepath.Join(os.TempDir(), "peakpick-"+runID)
			}
			if dir, err = utils.ExpandHome(dir); err != nil {
				return err
			}
			r, err := chart.NewRenderer(dir)
			if err != nil {
				return err
			}
			a.Charts = &chartShow{Renderer: r, open: openFiles, log: log}
			log.Debug("charts enabled", zap.String("dir", dir))
		}

		res, err := a.Run(enriched)
		if err != nil {
			if errors.Is(err, analysis.ErrNoCandidate) {
				return fmt.Errorf("no class %d mountain in %s: %w", analysis.MaxDifficultyClass, path, err)
			}
			return err
		}
		for _, c := range res.Charts {
			fmt.Fprintf(out, "✓ Chart saved: %s\n", c)
		}
		if res.Elevation.Scatter.Fit == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Not enough distinct elevations to fit a regression line")
		}

		if err := present.PrintMountain(out, res.Perfect); err != nil {
			return err
		}
		m, err := res.Perfect.Mountain(0)
		if err != nil {
			return err
		}

		fetcher := present.NewFetcher(time.Duration(cfg.HTTPTimeoutSec) * time.Second)
		format, err := fetcher.Download(cmd.Context(), m.PhotoURL, imagePath)
		if err != nil {
			return fmt.Errorf("download photo of %s: %w", m.Name, err)
		}
		log.Info("photo saved",
			zap.String("mountain", m.Name),
			zap.Float64("lat", m.Latitude),
			zap.Float64("lng", m.Longitude),
			zap.String("url", m.PhotoURL),
			zap.String("path", imagePath),
			zap.String("format", format))
		name := m.Name
		if m.Range != "" {
			name = fmt.Sprintf("%s (%s)", m.Name, m.Range)
		}
		fmt.Fprintf(out, "✓ Saved photo of %s to %s\n", name, imagePath)

		if cfg.OpenImage && openFiles {
			if err := openViewer.Open(imagePath); err != nil {
				return err
			}
		}
		return nil
	},
}

// chartShow opens each chart as soon as it is rendered so they appear in
// drawing order.
type chartShow struct {
	*chart.Renderer
	open bool
	log  *zap.Logger
}

func (c *chartShow) show(path string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	c.log.Debug("chart rendered", zap.String("path", path))
	if c.open {
		if err := openViewer.Open(path); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (c *chartShow) Prominence(fc analysis.FourteenerCounts) (string, error) {
	return c.show(c.Renderer.Prominence(fc))
}

func (c *chartShow) Elevation(p analysis.ElevationPanel) (string, error) {
	return c.show(c.Renderer.Elevation(p))
}

func (c *chartShow) Difficulty(counts []analysis.ClassCount) (string, error) {
	return c.show(c.Renderer.Difficulty(counts))
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "skip rendering the charts")
	runCmd.Flags().BoolVar(&runNoOpen, "no-open", false, "do not open charts or the photo in a viewer")
	runCmd.Flags().StringVar(&runImage, "image", "", "where to save the photo (default from config: mountain.png)")
	runCmd.Flags().StringVar(&runChartDir, "chart-dir", "", "directory for chart PNGs (default: a temp dir per run)")
	runCmd.Flags().BoolVar(&runAllPeaks, "all-peaks", false, "keep peaks that fail the prominence rule")
}
