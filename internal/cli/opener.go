package cli

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemOpener opens files with the platform's default viewer.
type SystemOpener struct{}

func (SystemOpener) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("no viewer for %s", runtime.GOOS)
	}
	return cmd.Start()
}
