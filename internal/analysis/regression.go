package analysis

import (
	"math"

	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Fit is an ordinary least squares line y = Alpha + Beta*x.
type Fit struct {
	Alpha float64
	Beta  float64
	R2    float64
	N     int
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 { return f.Alpha + f.Beta*x }

// FitLine fits y against x by ordinary least squares.
func FitLine(x, y []float64) (Fit, error) {
	if len(x) != len(y) || len(x) < 2 || !varies(x) {
		return Fit{}, ErrUnderdetermined
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return Fit{}, ErrUnderdetermined
	}
	return Fit{
		Alpha: alpha,
		Beta:  beta,
		R2:    stat.RSquared(x, y, nil, alpha, beta),
		N:     len(x),
	}, nil
}

func varies(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return true
		}
	}
	return false
}

// ElevationTraffic holds the elevation-vs-traffic scatter and its fit.
// Fit is nil when the data cannot determine a line.
type ElevationTraffic struct {
	ElevationM []float64
	TrafficAvg []float64
	Fit        *Fit
}

// FitElevationTraffic regresses average traffic on elevation in meters.
func FitElevationTraffic(ds *dataset.Dataset) (ElevationTraffic, error) {
	x, err := ds.Floats(dataset.ColElevationM)
	if err != nil {
		return ElevationTraffic{}, err
	}
	y, err := ds.Floats(dataset.ColTrafficAvg)
	if err != nil {
		return ElevationTraffic{}, err
	}
	out := ElevationTraffic{ElevationM: x, TrafficAvg: y}
	fit, err := FitLine(x, y)
	if err != nil {
		return out, err
	}
	out.Fit = &fit
	return out, nil
}

// MeanElevation is the mean of Elevation_ft truncated to whole feet.
func MeanElevation(ds *dataset.Dataset) (int, error) {
	ft, err := ds.Floats(dataset.ColElevationFt)
	if err != nil {
		return 0, err
	}
	if len(ft) == 0 {
		return 0, nil
	}
	return int(stat.Mean(ft, nil)), nil
}
