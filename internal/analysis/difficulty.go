package analysis

import (
	"sort"

	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MaxDifficultyClass is the hardest class in the table below.
const MaxDifficultyClass = 4

// difficultyClasses reduces route labels to an ordinal on the Yosemite
// Decimal System's lower classes.
var difficultyClasses = map[string]int{
	"Class 1":      1,
	"Class 2":      2,
	"Hard Class 2": 2,
	"Easy Class 3": 3,
	"Class 3":      3,
	"Hard Class 3": 3,
	"Class 4":      4,
}

// DifficultyClass maps a difficulty label to its class.
func DifficultyClass(label string) (int, error) {
	c, ok := difficultyClasses[label]
	if !ok {
		return 0, ErrUnknownDifficulty
	}
	return c, nil
}

// ClassCount is the number of records in one difficulty class.
type ClassCount struct {
	Class int
	Count int
}

// Classify renames Difficulty to Difficulty Cls and replaces each label with
// its class number. An unknown label fails the whole dataset.
func Classify(ds *dataset.Dataset) (*dataset.Dataset, error) {
	labels, err := ds.Strings(dataset.ColDifficulty)
	if err != nil {
		return nil, err
	}
	peaks, err := ds.Strings(dataset.ColPeak)
	if err != nil {
		return nil, err
	}
	classes := make([]int, len(labels))
	for i, l := range labels {
		c, err := DifficultyClass(l)
		if err != nil {
			return nil, &UnknownDifficultyError{Row: i + 1, Mountain: peaks[i], Label: l}
		}
		classes[i] = c
	}
	return ds.Transform("classify difficulty", func(df dataframe.DataFrame) dataframe.DataFrame {
		return df.Rename(dataset.ColDifficultyCls, dataset.ColDifficulty).
			Mutate(series.New(classes, series.Int, dataset.ColDifficultyCls))
	})
}

// CountClasses tallies records per difficulty class in ascending class order.
// Classes with no records are omitted.
func CountClasses(ds *dataset.Dataset) ([]ClassCount, error) {
	classes, err := ds.Ints(dataset.ColDifficultyCls)
	if err != nil {
		return nil, err
	}
	tally := map[int]int{}
	for _, c := range classes {
		tally[c]++
	}
	out := make([]ClassCount, 0, len(tally))
	for c, n := range tally {
		out = append(out, ClassCount{Class: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out, nil
}
