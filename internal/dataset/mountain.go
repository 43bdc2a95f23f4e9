package dataset

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/series"
)

// Field is one column of a record, formatted for display.
type Field struct {
	Name  string
	Value string
}

// Mountain is a typed view of one enriched and classified record.
type Mountain struct {
	ID              string
	Name            string
	Range           string
	ElevationFt     int
	ElevationM      int
	Latitude        float64
	Longitude       float64
	IsolationMi     float64
	DistanceMi      float64
	GainFt          int
	GainPerMileFt   int
	DifficultyClass int
	TrafficAvg      int
	PhotoURL        string
}

// Fields returns every column of the given row in column order.
func (d *Dataset) Fields(row int) ([]Field, error) {
	if row < 0 || row >= d.Rows() {
		return nil, fmt.Errorf("row %d out of range (%d rows)", row, d.Rows())
	}
	names := d.Columns()
	out := make([]Field, len(names))
	for j, name := range names {
		out[j] = Field{Name: name, Value: formatElem(d.Frame.Elem(row, j))}
	}
	return out, nil
}

// formatElem prints floats in their shortest form instead of gota's %f.
func formatElem(e series.Element) string {
	if e.Type() == series.Float && !e.IsNA() {
		return strconv.FormatFloat(e.Float(), 'f', -1, 64)
	}
	return e.String()
}

// Mountain reads the given row through the enriched column names.
func (d *Dataset) Mountain(row int) (Mountain, error) {
	if row < 0 || row >= d.Rows() {
		return Mountain{}, fmt.Errorf("row %d out of range (%d rows)", row, d.Rows())
	}
	var m Mountain
	var err error
	text := func(col string) string {
		if err != nil {
			return ""
		}
		var v []string
		v, err = d.Strings(col)
		if err != nil {
			return ""
		}
		return v[row]
	}
	integer := func(col string) int {
		if err != nil {
			return 0
		}
		var v []int
		v, err = d.Ints(col)
		if err != nil {
			return 0
		}
		return v[row]
	}
	float := func(col string) float64 {
		if err != nil {
			return 0
		}
		var v []float64
		v, err = d.Floats(col)
		if err != nil {
			return 0
		}
		return v[row]
	}
	m.ID = text(ColColumnID)
	m.Name = text(ColPeak)
	m.ElevationFt = integer(ColElevationFt)
	m.ElevationM = integer(ColElevationM)
	m.Latitude = float(ColLatitude)
	m.Longitude = float(ColLongitude)
	m.IsolationMi = float(ColIsolation)
	m.DistanceMi = float(ColDistance)
	m.GainFt = integer(ColElevGain)
	m.GainPerMileFt = integer(ColGainPerMile)
	m.DifficultyClass = integer(ColDifficultyCls)
	m.TrafficAvg = integer(ColTrafficAvg)
	m.PhotoURL = text(ColPhoto)
	if err != nil {
		return Mountain{}, err
	}
	if d.HasColumn(ColRange) {
		m.Range = text(ColRange)
	}
	return m, err
}
