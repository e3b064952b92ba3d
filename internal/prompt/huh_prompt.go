package prompt

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/muesli/termenv"
)

// HuhSelector implements Selector using the charmbracelet/huh library.
// File pickers start in Dir.
type HuhSelector struct {
	Dir string
	out *termenv.Output
}

// NewHuhSelector creates a huh-based selector that clears w.
func NewHuhSelector(dir string, w io.Writer) *HuhSelector {
	return &HuhSelector{
		Dir: dir,
		out: termenv.NewOutput(w),
	}
}

func (s *HuhSelector) SelectSingleFile(title string) (string, error) {
	var result string

	picker := huh.NewFilePicker().
		Title(title).
		CurrentDirectory(s.Dir).
		AllowedTypes(ImageExtensions).
		FileAllowed(true).
		DirAllowed(false).
		Picking(true).
		Value(&result)

	err := huh.NewForm(huh.NewGroup(picker)).Run()
	if err != nil {
		return "", normalize(err)
	}
	if result == "" {
		return "", ErrNoSelection
	}
	return result, nil
}

func (s *HuhSelector) SelectMultipleFiles(title string) ([]string, error) {
	files, err := ImageFiles(s.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSelection
	}

	var result []string

	opts := make([]huh.Option[string], len(files))
	for i, f := range files {
		opts[i] = huh.NewOption(filepath.Base(f), f)
	}

	err = huh.NewMultiSelect[string]().
		Title(title).
		Options(opts...).
		Filterable(true).
		Value(&result).
		Run()
	if err != nil {
		return nil, normalize(err)
	}
	if len(result) == 0 {
		return nil, ErrNoSelection
	}
	return result, nil
}

func (s *HuhSelector) ClearDisplay() error {
	s.out.ClearScreen()
	return nil
}

// normalize maps a user abort to ErrNoSelection.
func normalize(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrNoSelection
	}
	return err
}
