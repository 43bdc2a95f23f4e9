package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/golang/geo/s2"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dataset is an ordered table of mountain records.
type Dataset struct {
	// Name is the base name of the file the rows came from.
	Name  string
	Frame dataframe.DataFrame
}

// Rows returns the number of records.
func (d *Dataset) Rows() int { return d.Frame.Nrow() }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string { return d.Frame.Names() }

// HasColumn reports whether the named column is present.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Frame.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// with returns a dataset sharing d's name around a new frame.
func (d *Dataset) with(df dataframe.DataFrame) *Dataset {
	return &Dataset{Name: d.Name, Frame: df}
}

// Load reads a mountain CSV from disk.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Read(filepath.Base(path), f)
}

// Read parses a mountain CSV. Any null cell in the raw input fails the whole
// load with a *MissingDataError; nothing is returned alongside an error.
func Read(name string, r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	cr := csv.NewReader(bytes.NewReader(decodeText(raw)))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmpty
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}
	ncol := len(header)
	for j := 1; j < len(records); j++ {
		rec := records[j]
		if len(rec) > ncol {
			return nil, fmt.Errorf("row %d: %d fields, header has %d: %w", j, len(rec), ncol, ErrMalformedRow)
		}
		if len(rec) < ncol {
			// short rows are missing their trailing cells
			pad := make([]string, ncol)
			copy(pad, rec)
			rec = pad
		}
		for i, v := range rec {
			v = strings.TrimSpace(v)
			if nullMarkers[v] {
				return nil, &MissingDataError{Row: j, Column: header[i]}
			}
			if columnTypes[header[i]] == series.Int {
				n, err := integralText(v)
				if err != nil {
					return nil, &MissingDataError{Row: j, Column: header[i], Value: v, Want: "an integer"}
				}
				v = n
			}
			rec[i] = v
		}
		records[j] = rec
	}

	df := dataframe.LoadRecords(records, dataframe.WithTypes(columnTypes))
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	if err := checkNumeric(df, records); err != nil {
		return nil, err
	}
	if err := checkCoordinates(df); err != nil {
		return nil, err
	}
	return &Dataset{Name: name, Frame: df}, nil
}

// decodeText returns UTF-8 input as is and reads anything else as
// Windows-1252, which assigns a character to every byte.
func decodeText(raw []byte) []byte {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return bytes.ToValidUTF8(raw, []byte("�"))
	}
	return out
}

// integralText accepts whole numbers written with a fractional part, such as
// "20000.0", and returns them in integer form. Text that is not a number is
// returned unchanged for gota to reject.
func integralText(v string) (string, error) {
	if _, err := strconv.Atoi(v); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return "", fmt.Errorf("%q is not an integer", v)
	}
	return strconv.FormatInt(int64(f), 10), nil
}

func checkColumns(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, c := range requiredColumns {
		if !have[c] {
			missing = append(missing, strconv.Quote(c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// checkNumeric reports the first typed numeric cell gota could not parse.
func checkNumeric(df dataframe.DataFrame, records [][]string) error {
	header := records[0]
	for i, name := range header {
		t, ok := columnTypes[name]
		if !ok || (t != series.Int && t != series.Float) {
			continue
		}
		for row, nan := range df.Col(name).IsNaN() {
			if nan {
				return &MissingDataError{Row: row + 1, Column: name, Value: records[row+1][i]}
			}
		}
	}
	return nil
}

func checkCoordinates(df dataframe.DataFrame) error {
	lat := df.Col(ColLat).Float()
	lng := df.Col(ColLong).Float()
	peaks := df.Col(ColPeak).Records()
	for i := range lat {
		if !s2.LatLngFromDegrees(lat[i], lng[i]).IsValid() {
			return fmt.Errorf("row %d (%s): %w: %g, %g", i+1, peaks[i], ErrBadCoordinate, lat[i], lng[i])
		}
	}
	return nil
}

// column looks up a column, failing with ErrMissingColumn instead of
// returning gota's error series.
func (d *Dataset) column(name string) (series.Series, error) {
	if !d.HasColumn(name) {
		return series.Series{}, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return d.Frame.Col(name), nil
}

// Ints returns an integer column.
func (d *Dataset) Ints(name string) ([]int, error) {
	s, err := d.column(name)
	if err != nil {
		return nil, err
	}
	v, err := s.Int()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

// Floats returns a numeric column as float64 values.
func (d *Dataset) Floats(name string) ([]float64, error) {
	s, err := d.column(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Strings returns a column's values as text.
func (d *Dataset) Strings(name string) ([]string, error) {
	s, err := d.column(name)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// errFrame converts a gota frame error into a Go error with context.
func errFrame(op string, df dataframe.DataFrame) error {
	if df.Err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, df.Err)
}

// Transform applies a frame operation and wraps any gota error.
func (d *Dataset) Transform(op string, fn func(dataframe.DataFrame) dataframe.DataFrame) (*Dataset, error) {
	df := fn(d.Frame)
	if err := errFrame(op, df); err != nil {
		return nil, err
	}
	return d.with(df), nil
}
