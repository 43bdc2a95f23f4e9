// Package datasettest provides a small 14ers fixture for tests.
package datasettest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
)

// Header is the raw column order of the published dataset.
const Header = "ID,Mountain Peak,Mountain Range,Elevation_ft,fourteener,Prominence_ft,Isolation_mi,Lat,Long,Standard Route,Distance_mi,Elevation Gain_ft,Difficulty,Traffic Low,Traffic High,photo"

// rows use {photo} as a placeholder for the photo URL base.
var rows = []string{
	"1,Mt. Elbert,Sawatch Range,14433,Y,9093,670,39.1178,-106.4454,Northeast Ridge,9.5,4700,Class 1,20000,25000,{photo}/elbert.jpg",
	"2,Mt. Massive,Sawatch Range,14421,Y,1961,5.06,39.1875,-106.4757,East Slopes,14.5,4500,Class 2,7000,10000,{photo}/massive.jpg",
	"3,Capitol Peak,Elk Mountains,14130,Y,1750,7.44,39.1503,-107.0829,Northeast Ridge,17,5300,Class 4,1000,3000,{photo}/capitol.jpg",
	"4,Little Bear Peak,Sangre de Cristo Range,14037,Y,377,1,37.5666,-105.4972,West Ridge,14,6200,Class 4,1000,3000,{photo}/littlebear.jpg",
	"5,North Maroon Peak,Elk Mountains,14014,N,234,0.36,39.076,-106.9873,Northeast Ridge,9.25,4800,Class 4,500,1000,{photo}/northmaroon.jpg",
	"6,Longs Peak,Front Range,14255,Y,2940,43.6,40.255,-105.615,Keyhole Route,15,5100,Hard Class 3,15000,20000,{photo}/longs.jpg",
}

// DefaultPhotoBase is the photo URL base used by Sample.
const DefaultPhotoBase = "https://photos.example.com"

// CSV renders the fixture with photo URLs under photoBase.
func CSV(photoBase string) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.ReplaceAll(r, "{photo}", photoBase))
		b.WriteString("\n")
	}
	return b.String()
}

// Sample is the fixture with DefaultPhotoBase.
func Sample() string { return CSV(DefaultPhotoBase) }

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// Load parses content into a dataset, failing the test on error.
func Load(t testing.TB, content string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read("14er.csv", strings.NewReader(content))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return ds
}

// Enriched loads and enriches content, failing the test on error.
func Enriched(t testing.TB, content string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Enrich(Load(t, content))
	if err != nil {
		t.Fatalf("enrich fixture: %v", err)
	}
	return ds
}

// Build renders a custom fixture from raw rows without the header.
func Build(rows ...string) string {
	return Header + "\n" + strings.Join(rows, "\n") + "\n"
}
