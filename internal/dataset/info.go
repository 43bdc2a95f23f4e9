package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Info summarizes a dataset's shape and per-column contents.
type Info struct {
	Name string
	Rows int
	Cols []ColumnInfo
}

// ColumnInfo captures the parsed type and statistics of one column.
type ColumnInfo struct {
	Name    string
	Kind    string // int|float|string|bool
	NonNull int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	// Text columns
	Unique    int
	TopValues []CategoryCount
}

// CategoryCount is how often one value occurs in a text column.
type CategoryCount struct {
	Value string
	Count int
}

// Info computes the summary. Numeric stats ignore NaN cells.
func (d *Dataset) Info() *Info {
	info := &Info{Name: d.Name, Rows: d.Rows()}
	for _, name := range d.Columns() {
		s := d.Frame.Col(name)
		c := ColumnInfo{Name: name, Kind: string(s.Type())}
		for _, nan := range s.IsNaN() {
			if !nan {
				c.NonNull++
			}
		}
		switch s.Type() {
		case series.Int, series.Float:
			if c.NonNull > 0 {
				c.Min, c.Max, c.Mean = numericStats(s.Float())
			}
		default:
			c.TopValues, c.Unique = topValues(s.Records(), 5)
		}
		info.Cols = append(info.Cols, c)
	}
	return info
}

func numericStats(vals []float64) (lo, hi, mean float64) {
	present := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0, 0, 0
	}
	return floats.Min(present), floats.Max(present), stat.Mean(present, nil)
}

func topValues(vals []string, limit int) ([]CategoryCount, int) {
	counts := map[string]int{}
	for _, v := range vals {
		counts[v]++
	}
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops, len(counts)
}

// String renders the summary for the console.
func (i *Info) String() string {
	var b strings.Builder
	b.WriteString("[DATASET INFO]\n")
	if i.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", i.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", i.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(i.Cols)))
	b.WriteString("[SCHEMA]\n")
	for _, c := range i.Cols {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d)", c.Name, c.Kind, c.NonNull))
		switch c.Kind {
		case string(series.Int), string(series.Float):
			if c.NonNull > 0 {
				b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g", c.Min, c.Max, c.Mean))
			}
		default:
			if len(c.TopValues) > 0 {
				b.WriteString("; top: ")
				for k, kv := range c.TopValues {
					if k > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", shorten(kv.Value, 40), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shorten(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
