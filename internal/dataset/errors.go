package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates the input has no header or no data rows.
	ErrEmpty = errors.New("dataset is empty")
	// ErrMissingData indicates a null or unparsable cell in the raw input.
	ErrMissingData = errors.New("missing data")
	// ErrMissingColumn indicates a required column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrBadCoordinate indicates a latitude/longitude pair outside the valid range.
	ErrBadCoordinate = errors.New("invalid coordinate")
	// ErrMalformedRow indicates a row with more fields than the header.
	ErrMalformedRow = errors.New("malformed row")
	// ErrZeroDistance indicates a route distance of zero, which has no gain per mile.
	ErrZeroDistance = errors.New("zero route distance")
)

// MissingDataError locates the first missing or unparsable cell.
// Row is 1-based and does not count the header.
type MissingDataError struct {
	Row    int
	Column string
	Value  string
	// Want describes the expected value when Value is set; empty means "a number".
	Want string
}

func (e *MissingDataError) Error() string {
	if e.Value != "" {
		want := e.Want
		if want == "" {
			want = "a number"
		}
		return fmt.Sprintf("missing data: row %d, column %q: %q is not %s", e.Row, e.Column, e.Value, want)
	}
	return fmt.Sprintf("missing data: row %d, column %q is empty", e.Row, e.Column)
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }

// ZeroDistanceError names the mountain whose route distance is zero.
type ZeroDistanceError struct {
	Row      int
	Mountain string
}

func (e *ZeroDistanceError) Error() string {
	return fmt.Sprintf("row %d (%s): cannot compute elevation gain per mile: %v", e.Row, e.Mountain, ErrZeroDistance)
}

func (e *ZeroDistanceError) Unwrap() error { return ErrZeroDistance }
