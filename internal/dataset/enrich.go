package dataset

import (
	"math"

	"github.com/go-gota/gota/series"
)

// FeetPerMeter is the conversion factor used for Elevation_m.
const FeetPerMeter = 3.281

// TrafficAverage is the mean of the low and high traffic estimates, rounded down.
func TrafficAverage(low, high int) int {
	return int(math.Floor(float64(low+high) / 2))
}

// FeetToMeters converts an elevation in feet to whole meters, rounded down.
func FeetToMeters(ft float64) int {
	return int(math.Floor(ft / FeetPerMeter))
}

// GainPerMile is the elevation gain per route mile, rounded down.
func GainPerMile(gainFt, distanceMi float64) (int, error) {
	if distanceMi == 0 {
		return 0, ErrZeroDistance
	}
	return int(math.Floor(gainFt / distanceMi)), nil
}

// Enrich renames headers for display and derives Traffic Avg, Elevation_m and
// Elev per mi_ft. Traffic Low and Traffic High are replaced by their average.
// The input dataset is left untouched.
func Enrich(ds *Dataset) (*Dataset, error) {
	if ds == nil || ds.Rows() == 0 {
		return nil, ErrEmpty
	}
	df := ds.Frame
	for _, r := range renames {
		df = df.Rename(r.to, r.from)
		if err := errFrame("rename "+r.from, df); err != nil {
			return nil, err
		}
	}
	out := ds.with(df)

	low, err := out.Ints(ColTrafficLow)
	if err != nil {
		return nil, err
	}
	high, err := out.Ints(ColTrafficHigh)
	if err != nil {
		return nil, err
	}
	feet, err := out.Floats(ColElevationFt)
	if err != nil {
		return nil, err
	}
	gain, err := out.Floats(ColElevGain)
	if err != nil {
		return nil, err
	}
	dist, err := out.Floats(ColDistance)
	if err != nil {
		return nil, err
	}
	peaks, err := out.Strings(ColPeak)
	if err != nil {
		return nil, err
	}

	n := out.Rows()
	avg := make([]int, n)
	meters := make([]int, n)
	perMile := make([]int, n)
	for i := 0; i < n; i++ {
		avg[i] = TrafficAverage(low[i], high[i])
		meters[i] = FeetToMeters(feet[i])
		pm, err := GainPerMile(gain[i], dist[i])
		if err != nil {
			return nil, &ZeroDistanceError{Row: i + 1, Mountain: peaks[i]}
		}
		perMile[i] = pm
	}

	order := enrichedOrder(out.Columns())
	df = out.Frame.
		Mutate(series.New(avg, series.Int, ColTrafficAvg)).
		Mutate(series.New(meters, series.Int, ColElevationM)).
		Mutate(series.New(perMile, series.Int, ColGainPerMile)).
		Drop([]string{ColTrafficLow, ColTrafficHigh}).
		Select(order)
	if err := errFrame("derive columns", df); err != nil {
		return nil, err
	}
	return out.with(df), nil
}

// enrichedOrder places each derived column where it reads naturally:
// meters after feet, per-mile gain after total gain, and the traffic average
// where the low/high pair used to be.
func enrichedOrder(names []string) []string {
	order := make([]string, 0, len(names)+1)
	for _, name := range names {
		switch name {
		case ColTrafficLow:
			order = append(order, ColTrafficAvg)
		case ColTrafficHigh:
		case ColElevationFt:
			order = append(order, name, ColElevationM)
		case ColElevGain:
			order = append(order, name, ColGainPerMile)
		default:
			order = append(order, name)
		}
	}
	return order
}
