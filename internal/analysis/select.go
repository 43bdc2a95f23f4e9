package analysis

import (
	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// SelectPerfect picks the least visited of the hardest mountains. Among
// class 4 records it keeps those at the minimum Traffic Avg and returns the
// one with the greatest Isolation_mi; equal isolation goes to the earlier row.
// The result has exactly one row.
func SelectPerfect(ds *dataset.Dataset) (*dataset.Dataset, error) {
	hardest, err := ds.Transform("filter hardest class", func(df dataframe.DataFrame) dataframe.DataFrame {
		return df.Filter(dataframe.F{
			Colname:    dataset.ColDifficultyCls,
			Comparator: series.Eq,
			Comparando: MaxDifficultyClass,
		})
	})
	if err != nil {
		return nil, err
	}
	if hardest.Rows() == 0 {
		return nil, ErrNoCandidate
	}

	traffic, err := hardest.Ints(dataset.ColTrafficAvg)
	if err != nil {
		return nil, err
	}
	minTraffic := traffic[0]
	for _, t := range traffic[1:] {
		if t < minTraffic {
			minTraffic = t
		}
	}
	quiet, err := hardest.Transform("filter least traffic", func(df dataframe.DataFrame) dataframe.DataFrame {
		return df.Filter(dataframe.F{
			Colname:    dataset.ColTrafficAvg,
			Comparator: series.LessEq,
			Comparando: minTraffic,
		})
	})
	if err != nil {
		return nil, err
	}

	isolation, err := quiet.Floats(dataset.ColIsolation)
	if err != nil {
		return nil, err
	}
	best := 0
	for i, v := range isolation {
		if v > isolation[best] {
			best = i
		}
	}
	return quiet.Transform("take selected row", func(df dataframe.DataFrame) dataframe.DataFrame {
		return df.Subset([]int{best})
	})
}
