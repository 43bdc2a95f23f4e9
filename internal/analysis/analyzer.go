package analysis

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"go.uber.org/zap"
)

// ElevationPanel is the data behind the elevation chart pair.
type ElevationPanel struct {
	ElevationFt []float64
	MeanFt      int
	Scatter     ElevationTraffic
}

// ChartRenderer draws the exploratory charts and returns where each one went.
type ChartRenderer interface {
	Prominence(c FourteenerCounts) (string, error)
	Elevation(p ElevationPanel) (string, error)
	Difficulty(counts []ClassCount) (string, error)
}

// Result is everything the analyzer produced for one dataset.
type Result struct {
	// Perfect holds the single selected record.
	Perfect     *dataset.Dataset
	Fourteeners FourteenerCounts
	Elevation   ElevationPanel
	Classes     []ClassCount
	// Charts lists rendered chart files in drawing order.
	Charts []string
}

// Analyzer charts an enriched dataset and selects the perfect mountain.
type Analyzer struct {
	// Charts may be nil to skip rendering.
	Charts ChartRenderer
	// FourteenersOnly drops records flagged N before the elevation charts.
	FourteenersOnly bool
	Logger          *zap.Logger
}

// Run charts the dataset in three steps (prominence, elevation, difficulty)
// and then selects from the classified records.
func (a *Analyzer) Run(ds *dataset.Dataset) (*Result, error) {
	log := a.Logger
	if log == nil {
		log = zap.NewNop()
	}
	res := &Result{}

	counts, err := CountFourteeners(ds)
	if err != nil {
		return nil, err
	}
	res.Fourteeners = counts
	log.Debug("fourteener flags", zap.Int("yes", counts.Yes), zap.Int("no", counts.No))
	if err := a.render(res, func(r ChartRenderer) (string, error) { return r.Prominence(counts) }); err != nil {
		return nil, fmt.Errorf("prominence chart: %w", err)
	}

	peaks, err := DropFourteenerFlag(ds, a.FourteenersOnly)
	if err != nil {
		return nil, err
	}
	log.Debug("peaks retained", zap.Int("rows", peaks.Rows()), zap.Bool("fourteeners_only", a.FourteenersOnly))

	panel, err := elevationPanel(peaks)
	if err != nil {
		return nil, err
	}
	if panel.Scatter.Fit != nil {
		f := panel.Scatter.Fit
		log.Info("elevation vs traffic fit",
			zap.Float64("alpha", f.Alpha), zap.Float64("beta", f.Beta), zap.Float64("r2", f.R2), zap.Int("n", f.N))
	} else {
		log.Warn("elevation vs traffic: no regression line", zap.Error(ErrUnderdetermined))
	}
	res.Elevation = panel
	if err := a.render(res, func(r ChartRenderer) (string, error) { return r.Elevation(panel) }); err != nil {
		return nil, fmt.Errorf("elevation chart: %w", err)
	}

	classified, err := Classify(peaks)
	if err != nil {
		return nil, err
	}
	classes, err := CountClasses(classified)
	if err != nil {
		return nil, err
	}
	res.Classes = classes
	if err := a.render(res, func(r ChartRenderer) (string, error) { return r.Difficulty(classes) }); err != nil {
		return nil, fmt.Errorf("difficulty chart: %w", err)
	}

	perfect, err := SelectPerfect(classified)
	if err != nil {
		return res, err
	}
	res.Perfect = perfect
	return res, nil
}

func (a *Analyzer) render(res *Result, draw func(ChartRenderer) (string, error)) error {
	if a.Charts == nil {
		return nil
	}
	path, err := draw(a.Charts)
	if err != nil {
		return err
	}
	res.Charts = append(res.Charts, path)
	return nil
}

func elevationPanel(ds *dataset.Dataset) (ElevationPanel, error) {
	ft, err := ds.Floats(dataset.ColElevationFt)
	if err != nil {
		return ElevationPanel{}, err
	}
	mean, err := MeanElevation(ds)
	if err != nil {
		return ElevationPanel{}, err
	}
	scatter, err := FitElevationTraffic(ds)
	if err != nil && !errors.Is(err, ErrUnderdetermined) {
		return ElevationPanel{}, err
	}
	return ElevationPanel{ElevationFt: ft, MeanFt: mean, Scatter: scatter}, nil
}
