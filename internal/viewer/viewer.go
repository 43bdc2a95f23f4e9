// Package viewer hands files to the desktop's default application.
package viewer

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
)

// Opener shows a local file to the user.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) error

// Open calls f(path).
func (f OpenerFunc) Open(path string) error { return f(path) }

// System opens files with the platform's default handler (xdg-open, open,
// or rundll32). Output from the launched command goes to Stdout and Stderr;
// nil discards it.
type System struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Open launches the default viewer for path without waiting for it to close.
func (s System) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open viewer: %w", err)
	}
	browser.Stdout = discard(s.Stdout)
	browser.Stderr = discard(s.Stderr)
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("open viewer %s: %w", path, err)
	}
	return nil
}

func discard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// Nop never opens anything.
var Nop Opener = OpenerFunc(func(string) error { return nil })
