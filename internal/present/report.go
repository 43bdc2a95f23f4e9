package present

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
)

// PrintMountain writes the selected record as a heading followed by one
// tab-indented "name:\tvalue" line per column.
func PrintMountain(w io.Writer, ds *dataset.Dataset) error {
	if ds == nil || ds.Rows() == 0 {
		return fmt.Errorf("print mountain: %w", dataset.ErrEmpty)
	}
	fields, err := ds.Fields(0)
	if err != nil {
		return fmt.Errorf("print mountain: %w", err)
	}
	if _, err := fmt.Fprintln(w, "Perfect Mountain:"); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "\t%s:\t%s\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}
