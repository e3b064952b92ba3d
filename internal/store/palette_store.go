package store

import (
	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/model"
)

// MemoryPaletteStore implements PaletteStore in memory. It is owned by a
// single session and is not safe for concurrent use.
type MemoryPaletteStore struct {
	palettes []*model.Palette
}

// NewPaletteStore creates an empty palette store.
func NewPaletteStore() *MemoryPaletteStore {
	return &MemoryPaletteStore{}
}

// Add appends p and returns its 1-based index.
func (s *MemoryPaletteStore) Add(p *model.Palette) int {
	s.palettes = append(s.palettes, p)
	return len(s.palettes)
}

// Get returns the palette at the 1-based index.
func (s *MemoryPaletteStore) Get(index int) (*model.Palette, error) {
	if index < 1 || index > len(s.palettes) {
		return nil, palerr.IndexOutOfRange(index, len(s.palettes))
	}
	return s.palettes[index-1], nil
}

// List returns one entry per palette, in insertion order.
func (s *MemoryPaletteStore) List() []Entry {
	entries := make([]Entry, len(s.palettes))
	for i, p := range s.palettes {
		entries[i] = Entry{
			Index:      i + 1,
			ID:         p.ID,
			SourcePath: p.SourcePath,
			SwatchPath: p.SwatchPath(),
		}
	}
	return entries
}

// All returns the palettes in insertion order.
func (s *MemoryPaletteStore) All() []*model.Palette {
	out := make([]*model.Palette, len(s.palettes))
	copy(out, s.palettes)
	return out
}

func (s *MemoryPaletteStore) Len() int {
	return len(s.palettes)
}

