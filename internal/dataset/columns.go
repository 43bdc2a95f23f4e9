package dataset

import "github.com/go-gota/gota/series"

// Raw column headers of the 14ers dataset.
const (
	ColID          = "ID"
	ColPeak        = "Mountain Peak"
	ColRange       = "Mountain Range"
	ColElevationFt = "Elevation_ft"
	ColFourteener  = "fourteener"
	ColProminence  = "Prominence_ft"
	ColIsolation   = "Isolation_mi"
	ColLat         = "Lat"
	ColLong        = "Long"
	ColRoute       = "Standard Route"
	ColDistance    = "Distance_mi"
	ColGain        = "Elevation Gain_ft"
	ColDifficulty  = "Difficulty"
	ColTrafficLow  = "Traffic Low"
	ColTrafficHigh = "Traffic High"
	ColPhoto       = "photo"
)

// Columns introduced or renamed by Enrich and the analyzer.
const (
	ColColumnID      = "Column ID"
	ColLatitude      = "Latitude"
	ColLongitude     = "Longitude"
	ColElevGain      = "Elev Gain_ft"
	ColElevationM    = "Elevation_m"
	ColGainPerMile   = "Elev per mi_ft"
	ColTrafficAvg    = "Traffic Avg"
	ColDifficultyCls = "Difficulty Cls"
)

// requiredColumns must be present in every input file.
var requiredColumns = []string{
	ColID, ColPeak, ColElevationFt, ColFourteener, ColIsolation, ColLat, ColLong,
	ColDistance, ColGain, ColDifficulty, ColTrafficLow, ColTrafficHigh, ColPhoto,
}

// columnTypes pins the parse type of the columns used downstream. Anything
// else is left to gota's type detection.
var columnTypes = map[string]series.Type{
	ColID:          series.String,
	ColPeak:        series.String,
	ColRange:       series.String,
	ColRoute:       series.String,
	ColFourteener:  series.String,
	ColDifficulty:  series.String,
	ColPhoto:       series.String,
	ColElevationFt: series.Int,
	ColGain:        series.Int,
	ColTrafficLow:  series.Int,
	ColTrafficHigh: series.Int,
	ColIsolation:   series.Float,
	ColLat:         series.Float,
	ColLong:        series.Float,
	ColDistance:    series.Float,
}

// renames shortens headers for display.
var renames = []struct{ from, to string }{
	{ColID, ColColumnID},
	{ColLat, ColLatitude},
	{ColLong, ColLongitude},
	{ColGain, ColElevGain},
}

// nullMarkers are cell values treated as missing, the same set pandas uses by default.
var nullMarkers = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-NaN":     true,
	"-nan":     true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}
