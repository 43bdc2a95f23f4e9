package present_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/peakpick-cli/internal/analysis"
	"github.com/KaramelBytes/peakpick-cli/internal/dataset"
	"github.com/KaramelBytes/peakpick-cli/internal/dataset/datasettest"
	"github.com/KaramelBytes/peakpick-cli/internal/present"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPrintMountain(t *testing.T) {
	ds := datasettest.Enriched(t, datasettest.Sample())
	ds, err := analysis.Classify(ds)
	if err != nil {
		t.Fatal(err)
	}
	perfect, err := analysis.SelectPerfect(ds)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := present.PrintMountain(&buf, perfect); err != nil {
		t.Fatalf("PrintMountain: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Perfect Mountain:" {
		t.Fatalf("heading = %q", lines[0])
	}
	if len(lines) != 1+len(perfect.Columns()) {
		t.Fatalf("got %d lines for %d columns", len(lines), len(perfect.Columns()))
	}
	if lines[1] != "\tColumn ID:\t5" {
		t.Fatalf("first field = %q", lines[1])
	}
	for _, want := range []string{
		"\tMountain Peak:\tNorth Maroon Peak",
		"\tDistance_mi:\t9.25",
		"\tDifficulty Cls:\t4",
		"\tTraffic Avg:\t750",
	} {
		if !strings.Contains(buf.String(), want+"\n") {
			t.Fatalf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintMountainEmpty(t *testing.T) {
	if err := present.PrintMountain(&bytes.Buffer{}, nil); !errors.Is(err, dataset.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestDownload(t *testing.T) {
	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/peak.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(body)
		case "/page.html":
			_, _ = w.Write([]byte("<html>not an image</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &present.Fetcher{Client: srv.Client()}
	dir := t.TempDir()

	t.Run("ok", func(t *testing.T) {
		dest := filepath.Join(dir, "mountain.png")
		format, err := f.Download(context.Background(), srv.URL+"/peak.png", dest)
		if err != nil {
			t.Fatalf("Download: %v", err)
		}
		if format != "png" {
			t.Fatalf("format = %q", format)
		}
		got, err := os.ReadFile(dest)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, body) {
			t.Fatalf("saved bytes differ")
		}
	})

	t.Run("not found", func(t *testing.T) {
		dest := filepath.Join(dir, "missing.png")
		_, err := f.Download(context.Background(), srv.URL+"/nope.png", dest)
		var se *present.StatusError
		if !errors.As(err, &se) || se.Code != http.StatusNotFound {
			t.Fatalf("expected 404 StatusError, got %v", err)
		}
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Fatalf("file should not exist after failure")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		dest := filepath.Join(dir, "page.png")
		_, err := f.Download(context.Background(), srv.URL+"/page.html", dest)
		if !errors.Is(err, present.ErrNotImage) {
			t.Fatalf("expected ErrNotImage, got %v", err)
		}
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Fatalf("file should not exist after failure")
		}
	})

	t.Run("bad url", func(t *testing.T) {
		if _, err := f.Download(context.Background(), "ftp://example.com/x.png", filepath.Join(dir, "x.png")); err == nil {
			t.Fatalf("expected error for non-http url")
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := f.Download(ctx, srv.URL+"/peak.png", filepath.Join(dir, "c.png")); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
