package version

import (
	"fmt"
	"strings"
)

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/amterp/palettator/internal/version.Version=v1.2.3".
var Version = "0.1.0"

// Name is the program name shown in banners.
const Name = "PALETTATOR"

// String returns the display form, e.g. "palettator v0.1.0".
func String() string {
	return fmt.Sprintf("palettator v%s", strings.TrimPrefix(Version, "v"))
}
