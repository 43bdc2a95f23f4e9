package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/peakpick-cli/internal/analysis"
	"github.com/KaramelBytes/peakpick-cli/internal/chart"
	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/KaramelBytes/peakpick-cli/internal/dataset/datasettest"
	"github.com/KaramelBytes/peakpick-cli/internal/viewer"
	"go.uber.org/zap"
)

// resetCLI clears state that persists between Execute calls in one process.
func resetCLI(t *testing.T) *[]string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg = nil
	cfgFile = ""
	debug = false
	logger = zap.NewNop()
	runNoCharts, runNoOpen, runAllPeaks = false, false, false
	runImage, runChartDir = "", ""
	inspectOutputPath, inspectEnrich = "", false
	for _, f := range []string{"no-charts", "no-open", "all-peaks", "image", "chart-dir"} {
		if fl := runCmd.Flags().Lookup(f); fl != nil {
			fl.Changed = false
		}
	}

	var opened []string
	prev := openViewer
	openViewer = viewer.OpenerFunc(func(p string) error {
		opened = append(opened, p)
		return nil
	})
	t.Cleanup(func() { openViewer = prev })
	return &opened
}

// runCmdOut executes the root command with args and returns its stdout.
func runCmdOut(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func photoServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ".jpg") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCLI_Inspect(t *testing.T) {
	resetCLI(t)
	csv := datasettest.WriteFile(t, "14er.csv", datasettest.Sample())
	out, err := runCmdOut(t, "inspect", csv)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"[DATASET INFO]", "Rows: 6", "- Traffic Low: int"} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}

	resetCLI(t)
	outFile := filepath.Join(t.TempDir(), "summary.txt")
	if _, err := runCmdOut(t, "inspect", csv, "--enrich", "-o", outFile); err != nil {
		t.Fatalf("inspect --enrich: %v", err)
	}
	b, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "- Traffic Avg: int") {
		t.Fatalf("enriched summary missing Traffic Avg:\n%s", b)
	}
	if _, err := os.Stat(outFile + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestCLI_RunExpandsHomeInConfigPaths(t *testing.T) {
	resetCLI(t)
	home := os.Getenv("HOME")
	srv := photoServer(t)
	if err := os.WriteFile(filepath.Join(home, "14er.csv"), []byte(datasettest.CSV(srv.URL)), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PEAKPICK_DATA_FILE", "~/14er.csv")
	t.Setenv("PEAKPICK_IMAGE_FILE", "~/pick.png")

	out, err := runCmdOut(t, "run", "--no-charts", "--no-open")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(home, "pick.png")); err != nil {
		t.Fatalf("photo not saved under home: %v", err)
	}
	if !strings.Contains(out, "✓ Saved photo of Capitol Peak (Elk Mountains) to "+filepath.Join(home, "pick.png")) {
		t.Fatalf("status line should name the range and expanded path:\n%s", out)
	}
}

func TestCLI_RunEndToEnd(t *testing.T) {
	opened := resetCLI(t)
	srv := photoServer(t)
	csv := datasettest.WriteFile(t, "14er.csv", datasettest.CSV(srv.URL))
	work := t.TempDir()
	chartDir := filepath.Join(work, "charts")
	imagePath := filepath.Join(work, "mountain.png")

	out, err := runCmdOut(t, "run", csv, "--chart-dir", chartDir, "--image", imagePath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{
		"[DATASET INFO]",
		"Perfect Mountain:",
		"\tMountain Peak:\tCapitol Peak\n",
		"\tTraffic Avg:\t2000\n",
		"✓ Saved photo of Capitol Peak",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\tfourteener:") {
		t.Fatalf("fourteener column should be dropped:\n%s", out)
	}
	for _, name := range []string{chart.ProminenceFile, chart.ElevationFile, chart.DifficultyFile} {
		if _, err := os.Stat(filepath.Join(chartDir, name)); err != nil {
			t.Fatalf("chart %s: %v", name, err)
		}
	}
	if _, err := os.Stat(imagePath); err != nil {
		t.Fatalf("photo not saved: %v", err)
	}
	want := []string{
		filepath.Join(chartDir, chart.ProminenceFile),
		filepath.Join(chartDir, chart.ElevationFile),
		filepath.Join(chartDir, chart.DifficultyFile),
		imagePath,
	}
	if strings.Join(*opened, "|") != strings.Join(want, "|") {
		t.Fatalf("opened %v, want %v", *opened, want)
	}
}

func TestCLI_RunWithoutChartsOrViewer(t *testing.T) {
	opened := resetCLI(t)
	srv := photoServer(t)
	csv := datasettest.WriteFile(t, "14er.csv", datasettest.CSV(srv.URL))
	imagePath := filepath.Join(t.TempDir(), "pick.png")
	t.Setenv("PEAKPICK_OPEN_IMAGE", "false")

	out, err := runCmdOut(t, "run", csv, "--no-charts", "--all-peaks", "--image", imagePath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "\tMountain Peak:\tNorth Maroon Peak\n") {
		t.Fatalf("--all-peaks should select North Maroon Peak:\n%s", out)
	}
	if strings.Contains(out, "Chart saved") {
		t.Fatalf("charts rendered despite --no-charts:\n%s", out)
	}
	if len(*opened) != 0 {
		t.Fatalf("viewer opened %v", *opened)
	}
}

func TestCLI_RunNoCandidate(t *testing.T) {
	resetCLI(t)
	csv := datasettest.WriteFile(t, "easy.csv", datasettest.Build(
		"1,Mt. Elbert,Sawatch Range,14433,Y,9093,670,39.1178,-106.4454,Northeast Ridge,9.5,4700,Class 1,20000,25000,https://x/e.jpg",
	))
	imagePath := filepath.Join(t.TempDir(), "none.png")
	out, err := runCmdOut(t, "run", csv, "--no-charts", "--no-open", "--image", imagePath)
	if !errors.Is(err, analysis.ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
	if strings.Contains(out, "Perfect Mountain:") {
		t.Fatalf("nothing should be printed:\n%s", out)
	}
	if _, err := os.Stat(imagePath); !os.IsNotExist(err) {
		t.Fatalf("no photo should be downloaded")
	}
}

func TestCLI_RunMissingData(t *testing.T) {
	resetCLI(t)
	csv := datasettest.WriteFile(t, "holes.csv", datasettest.Build(
		"1,Mt. Elbert,Sawatch Range,14433,Y,9093,670,39.1178,-106.4454,Northeast Ridge,9.5,,Class 1,20000,25000,https://x/e.jpg",
	))
	_, err := runCmdOut(t, "run", csv, "--no-charts", "--no-open")
	if !errors.Is(err, dataset.ErrMissingData) {
		t.Fatalf("expected ErrMissingData, got %v", err)
	}
}

func TestCLI_RunPhotoNotFound(t *testing.T) {
	resetCLI(t)
	srv := photoServer(t)
	csv := datasettest.WriteFile(t, "14er.csv", strings.ReplaceAll(datasettest.CSV(srv.URL), ".jpg", ".gone"))
	_, err := runCmdOut(t, "run", csv, "--no-charts", "--no-open", "--image", filepath.Join(t.TempDir(), "x.png"))
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	resetCLI(t)
	if _, err := runCmdOut(t, "config", "set", "data_file", "peaks.csv"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := runCmdOut(t, "config", "set", "show_charts", "maybe"); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
	if _, err := runCmdOut(t, "config", "set", "api_key", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	cfg = nil
	out, err := runCmdOut(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "data_file: peaks.csv") || !strings.Contains(out, "chart_dir: (temp dir per run)") {
		t.Fatalf("config show output:\n%s", out)
	}
}
