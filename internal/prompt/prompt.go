package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNonInteractive is returned when prompting in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// ErrNoSelection is returned when the user closes a selector without
// choosing anything.
var ErrNoSelection = errors.New("no file has been selected")

// ImageExtensions lists the file extensions offered by the selectors.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".webp"}

// Selector defines the platform-specific conveniences of the interactive
// loop: picking files and clearing the screen.
type Selector interface {
	// SelectSingleFile lets the user pick one image file.
	SelectSingleFile(title string) (string, error)

	// SelectMultipleFiles lets the user pick one or more image files.
	SelectMultipleFiles(title string) ([]string, error)

	// ClearDisplay clears the terminal.
	ClearDisplay() error
}

// NoopSelector returns errors for all selections and never clears
// (non-interactive mode).
type NoopSelector struct{}

func (s *NoopSelector) SelectSingleFile(title string) (string, error) {
	return "", ErrNonInteractive
}

func (s *NoopSelector) SelectMultipleFiles(title string) ([]string, error) {
	return nil, ErrNonInteractive
}

func (s *NoopSelector) ClearDisplay() error {
	return nil
}

// IsImageFile reports whether path has an image extension.
func IsImageFile(path string) bool {
	return slices.Contains(ImageExtensions, strings.ToLower(filepath.Ext(path)))
}

// ImageFiles returns the image files directly inside dir, sorted by name.
func ImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsImageFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
