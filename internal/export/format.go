package export

import (
	"slices"
	"strings"

	palerr "github.com/amterp/palettator/internal/errors"
)

// Format is an export file format. Its value doubles as the file extension.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatGPL  Format = "gpl"
	FormatACO  Format = "aco"
)

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatGPL, FormatACO}
}

// ParseFormat parses a format token, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", palerr.UnsupportedFormat(s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	return string(f)
}

func (f Format) String() string {
	return strings.ToUpper(string(f))
}
