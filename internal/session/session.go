// Package session holds the state of one interactive palettator run: the
// active configuration, the generated palettes and the collaborators that
// extract, render, export and display them.
package session

import (
	"errors"
	"fmt"

	"github.com/amterp/palettator/internal/export"
	"github.com/amterp/palettator/internal/id"
	"github.com/amterp/palettator/internal/logging"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/internal/quantize"
	"github.com/amterp/palettator/internal/render"
	"github.com/amterp/palettator/internal/store"
)

// Extractor turns an image file into palette swatches.
type Extractor interface {
	Extract(path string) ([]model.Swatch, error)
}

// Renderer writes the swatch image for a palette and returns its path.
type Renderer interface {
	Render(p *model.Palette) (string, error)
}

// Exporter writes palettes to export files.
type Exporter interface {
	ExportAll(palettes []*model.Palette, formats []export.Format) *export.BatchResult
}

// Opener shows a file with the system viewer.
type Opener interface {
	Open(path string) error
}

// Session owns the palette list and configuration for one run.
// Uses interfaces for testability.
type Session struct {
	cfg       model.Config
	store     store.PaletteStore
	extractor Extractor
	renderer  Renderer
	exporter  Exporter
	opener    Opener
	newID     func() string
}

// New creates a session from explicit collaborators.
func New(cfg model.Config, st store.PaletteStore, extractor Extractor, renderer Renderer, exporter Exporter, opener Opener) *Session {
	return &Session{
		cfg:       cfg,
		store:     st,
		extractor: extractor,
		renderer:  renderer,
		exporter:  exporter,
		opener:    opener,
		newID:     id.Generate,
	}
}

// NewDefault creates a session with the real extractor, renderer and
// exporter built from cfg. The returned warnings come from font loading.
func NewDefault(cfg model.Config, opener Opener) (*Session, []string, error) {
	extractor, err := quantize.NewExtractor(cfg)
	if err != nil {
		return nil, nil, err
	}
	renderer, warnings := render.NewRenderer(cfg)
	exporter := export.NewExporter(cfg)

	return New(cfg, store.NewPaletteStore(), extractor, renderer, exporter, opener), warnings, nil
}

// Config returns the active configuration.
func (s *Session) Config() model.Config {
	return s.cfg
}

// Len returns the number of palettes currently held.
func (s *Session) Len() int {
	return s.store.Len()
}

// GenerateFailure records an image that produced no palette.
type GenerateFailure struct {
	Path string
	Err  error
}

// GenerateResult summarizes a Generate call.
type GenerateResult struct {
	Added    []store.Entry
	Failures []GenerateFailure
}

// Generate extracts, renders and appends a palette for each image in order.
// Palettes from earlier calls are kept. An image that fails is recorded and
// the rest of the batch continues.
func (s *Session) Generate(paths []string) *GenerateResult {
	result := &GenerateResult{}

	for _, path := range paths {
		p, err := s.generateOne(path)
		if err != nil {
			logging.Logger().Warn("palette generation failed", "path", path, "error", err)
			result.Failures = append(result.Failures, GenerateFailure{Path: path, Err: err})
			continue
		}
		index := s.store.Add(p)
		result.Added = append(result.Added, store.Entry{
			Index:      index,
			ID:         p.ID,
			SourcePath: p.SourcePath,
			SwatchPath: p.SwatchPath(),
		})
	}
	return result
}

func (s *Session) generateOne(path string) (*model.Palette, error) {
	swatches, err := s.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	p := model.NewPalette(s.newID(), path, swatches)
	swatchPath, err := s.renderer.Render(p)
	if err != nil {
		return nil, err
	}
	if err := p.SetSwatchPath(swatchPath); err != nil {
		return nil, err
	}

	logging.Logger().Debug("generated palette", "id", p.ID, "path", path, "swatch", swatchPath)
	return p, nil
}

// Show resolves a palette selector. A blank selector means the first
// palette; ALL is not accepted.
func (s *Session) Show(raw string) (int, *model.Palette, error) {
	sel, err := store.ResolveSelector(s.store, raw, false)
	if err != nil {
		return 0, nil, err
	}
	p, err := s.store.Get(sel.Index)
	if err != nil {
		return 0, nil, err
	}
	return sel.Index, p, nil
}

// Display opens the source image and the swatch image of p.
func (s *Session) Display(p *model.Palette) error {
	if s.opener == nil {
		return errors.New("no viewer available")
	}

	var errs []error
	for _, path := range []string{p.SourcePath, p.SwatchPath()} {
		if path == "" {
			continue
		}
		if err := s.opener.Open(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to open %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// List returns the palette list for display.
func (s *Session) List() []store.Entry {
	return s.store.List()
}

// Export writes the palettes chosen by raw ("ALL", an index, or blank for
// the first) in format f. Per-palette failures are in the result; the
// error is only set when the selector itself is invalid.
func (s *Session) Export(f export.Format, raw string) (*export.BatchResult, error) {
	sel, err := store.ResolveSelector(s.store, raw, true)
	if err != nil {
		return nil, err
	}

	var palettes []*model.Palette
	if sel.All {
		palettes = s.store.All()
	} else {
		p, err := s.store.Get(sel.Index)
		if err != nil {
			return nil, err
		}
		palettes = []*model.Palette{p}
	}

	return s.exporter.ExportAll(palettes, []export.Format{f}), nil
}
