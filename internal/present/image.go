package present

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KaramelBytes/peakpick-cli/internal/utils"
	_ "golang.org/x/image/webp"
)

// ErrNotImage indicates the downloaded body is not a decodable image.
var ErrNotImage = errors.New("response is not an image")

// maxImageBytes bounds how much of a photo response is read.
const maxImageBytes = 32 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// Fetcher downloads mountain photos.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a fetcher whose client gives up after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: timeout}}
}

// Download fetches rawURL, checks that the body decodes as an image, and
// writes it atomically to dest. It returns the detected format.
func (f *Fetcher) Download(ctx context.Context, rawURL, dest string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("fetch: invalid photo url %q", rawURL)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: rawURL, Status: resp.Status, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("fetch: read body: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, ErrNotImage)
	}
	if err := utils.SafeWriteFile(dest, body); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return format, nil
}
