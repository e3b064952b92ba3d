package store

import (
	"strconv"
	"strings"

	palerr "github.com/amterp/palettator/internal/errors"
)

// Selection is a resolved palette selector: either every palette or one
// 1-based index.
type Selection struct {
	All   bool
	Index int
}

// ResolveSelector turns a user-typed selector into a Selection checked
// against s. A blank selector, or one that is really a flag such as "-d",
// means the first palette. "ALL" is accepted only when allowAll is set.
func ResolveSelector(s PaletteStore, raw string, allowAll bool) (Selection, error) {
	raw = strings.TrimSpace(raw)
	n := s.Len()

	if allowAll && (raw == "ALL" || raw == "all") {
		if n == 0 {
			return Selection{}, palerr.InvalidSelector(raw, n)
		}
		return Selection{All: true}, nil
	}

	index := 1
	if raw != "" && !strings.HasPrefix(raw, "-") {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Selection{}, palerr.InvalidSelector(raw, n)
		}
		index = v
	}

	if index < 1 || index > n {
		return Selection{}, palerr.IndexOutOfRange(index, n)
	}
	return Selection{Index: index}, nil
}
