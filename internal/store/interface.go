package store

import "github.com/amterp/palettator/internal/model"

// PaletteStore holds the palettes generated during a session. It is
// append-only: indexes are 1-based and never shift.
type PaletteStore interface {
	Add(p *model.Palette) int
	Get(index int) (*model.Palette, error)
	List() []Entry
	All() []*model.Palette
	Len() int
}

// Entry is one row of the palette list.
type Entry struct {
	Index      int
	ID         string
	SourcePath string
	SwatchPath string
}
