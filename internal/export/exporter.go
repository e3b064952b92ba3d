// Package export writes palettes to swatch interchange formats: CSV, JSON,
// GIMP palettes (GPL) and Adobe color swatches (ACO).
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/logging"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/internal/util"
)

// Exporter writes palettes to files named <stem>_palette.<ext>. Files go
// next to the source image unless an export directory is configured.
type Exporter struct {
	dir      string
	encoders map[Format]Encoder
}

// NewExporter creates an exporter from the session configuration.
func NewExporter(cfg model.Config) *Exporter {
	return &Exporter{
		dir: cfg.ExportDir,
		encoders: map[Format]Encoder{
			FormatCSV:  CSVEncoder{},
			FormatJSON: JSONEncoder{},
			FormatGPL:  GPLEncoder{Columns: cfg.Columns},
			FormatACO:  ACOEncoder{},
		},
	}
}

// Path returns where p is exported in format f.
func (e *Exporter) Path(p *model.Palette, f Format) string {
	dir := e.dir
	if dir == "" {
		dir = filepath.Dir(p.SourcePath)
	}
	return filepath.Join(dir, p.Name()+"_palette."+f.Ext())
}

// Export writes p in format f and returns the written path. The file is
// replaced atomically.
func (e *Exporter) Export(p *model.Palette, f Format) (string, error) {
	return e.exportTo(p, f, e.Path(p, f))
}

func (e *Exporter) exportTo(p *model.Palette, f Format, path string) (string, error) {
	enc, ok := e.encoders[f]
	if !ok {
		return "", palerr.UnsupportedFormat(string(f))
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, p); err != nil {
		return "", err
	}

	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0755); err != nil {
			return "", &palerr.IOError{Op: "create", Path: e.dir, Err: err}
		}
	}

	err := util.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
	if err != nil {
		return "", palerr.WriteFailed(path, err)
	}

	logging.Logger().Debug("exported palette", "id", p.ID, "format", f.Ext(), "path", path)
	return path, nil
}

// Failure records one export that could not be written.
type Failure struct {
	Palette *model.Palette
	Format  Format
	Err     error
}

// BatchResult summarizes an ExportAll run.
type BatchResult struct {
	Written  []string
	Failures []Failure
}

// OK reports whether every export succeeded.
func (r *BatchResult) OK() bool {
	return len(r.Failures) == 0
}

// ExportAll writes every palette in every format. A failure does not stop
// the batch; it is recorded and the remaining exports still run. Palettes
// whose names collide, such as photo.png and photo.jpg.png, get numbered
// files so no export in the batch overwrites another.
func (e *Exporter) ExportAll(palettes []*model.Palette, formats []Format) *BatchResult {
	result := &BatchResult{}
	used := make(map[string]bool)
	for _, p := range palettes {
		for _, f := range formats {
			path, err := e.exportTo(p, f, uniquePath(e.Path(p, f), used))
			if err != nil {
				logging.Logger().Warn("export failed", "id", p.ID, "format", f.Ext(), "error", err)
				result.Failures = append(result.Failures, Failure{Palette: p, Format: f, Err: err})
				continue
			}
			result.Written = append(result.Written, path)
		}
	}
	return result
}

// uniquePath returns path, or path with a _2, _3, ... suffix before the
// extension when an earlier export in the batch already claimed it.
func uniquePath(path string, used map[string]bool) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	used[candidate] = true
	return candidate
}
