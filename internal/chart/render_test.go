package chart

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/peakpick-cli/internal/analysis"
)

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("%s is not a png: %v", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		t.Fatalf("%s has empty bounds", path)
	}
}

func TestRendererWritesAllCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	r, err := NewRenderer(dir)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	p, err := r.Prominence(analysis.FourteenerCounts{Yes: 53, No: 5})
	if err != nil {
		t.Fatalf("Prominence: %v", err)
	}
	assertPNG(t, p)

	fit := analysis.Fit{Alpha: 100, Beta: 2, N: 3}
	e, err := r.Elevation(analysis.ElevationPanel{
		ElevationFt: []float64{14440, 14433, 14421},
		MeanFt:      14431,
		Scatter: analysis.ElevationTraffic{
			ElevationM: []float64{4401, 4399, 4395},
			TrafficAvg: []float64{20000, 15000, 9000},
			Fit:        &fit,
		},
	})
	if err != nil {
		t.Fatalf("Elevation: %v", err)
	}
	assertPNG(t, e)
	if filepath.Base(e) != ElevationFile {
		t.Fatalf("unexpected elevation path %s", e)
	}

	d, err := r.Difficulty([]analysis.ClassCount{{Class: 1, Count: 20}, {Class: 2, Count: 18}, {Class: 3, Count: 13}, {Class: 4, Count: 2}})
	if err != nil {
		t.Fatalf("Difficulty: %v", err)
	}
	assertPNG(t, d)
}

func TestElevationWithoutFit(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path, err := r.Elevation(analysis.ElevationPanel{
		ElevationFt: []float64{14000},
		MeanFt:      14000,
		Scatter: analysis.ElevationTraffic{
			ElevationM: []float64{4267},
			TrafficAvg: []float64{500},
		},
	})
	if err != nil {
		t.Fatalf("Elevation: %v", err)
	}
	assertPNG(t, path)
}

func TestNewPieRejectsBadInput(t *testing.T) {
	if _, err := NewPie(Slice{Label: "a", Value: 0}, Slice{Label: "b", Value: 0}); err == nil {
		t.Fatalf("expected error for all-zero pie")
	}
	if _, err := NewPie(Slice{Label: "a", Value: -1}); err == nil {
		t.Fatalf("expected error for negative slice")
	}
	if _, err := NewPie(Slice{Label: "a", Value: math.NaN()}); err == nil {
		t.Fatalf("expected error for NaN slice")
	}
}

func TestDifficultyPieExplodesHardestClass(t *testing.T) {
	r := &Renderer{Dir: t.TempDir()}
	if _, err := r.Difficulty(nil); err == nil {
		t.Fatalf("expected error for no classes")
	}
	if got := classColor(4); got != classPens[3] {
		t.Fatalf("class 4 color = %v", got)
	}
	if got := classColor(9); got != gray {
		t.Fatalf("unknown class color = %v", got)
	}
}

func TestNewRendererRequiresDir(t *testing.T) {
	if _, err := NewRenderer(""); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
