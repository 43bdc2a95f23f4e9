package analysis

import (
	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FourteenerCounts splits records by whether they pass the prominence rule.
type FourteenerCounts struct {
	Yes int
	No  int
}

// Total is the number of flagged records.
func (c FourteenerCounts) Total() int { return c.Yes + c.No }

// CountFourteeners tallies the Y and N flags. Other values are not counted.
func CountFourteeners(ds *dataset.Dataset) (FourteenerCounts, error) {
	flags, err := ds.Strings(dataset.ColFourteener)
	if err != nil {
		return FourteenerCounts{}, err
	}
	var c FourteenerCounts
	for _, f := range flags {
		switch f {
		case "Y":
			c.Yes++
		case "N":
			c.No++
		}
	}
	return c, nil
}

// DropFourteenerFlag removes the fourteener column. When onlyFourteeners is
// set, records flagged N are removed first.
func DropFourteenerFlag(ds *dataset.Dataset, onlyFourteeners bool) (*dataset.Dataset, error) {
	if !ds.HasColumn(dataset.ColFourteener) {
		return ds, nil
	}
	return ds.Transform("drop fourteener", func(df dataframe.DataFrame) dataframe.DataFrame {
		if onlyFourteeners {
			df = df.Filter(dataframe.F{
				Colname:    dataset.ColFourteener,
				Comparator: series.Neq,
				Comparando: "N",
			})
		}
		return df.Drop(dataset.ColFourteener)
	})
}
