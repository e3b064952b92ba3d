package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigFileName  = "config.toml"
	GlobalConfigDir = ".config/palettator"
)

// GlobalConfigPath returns the path to the per-user config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}

// ResolvePath picks the config file to load. An explicit path always wins;
// otherwise ./config.toml, then the per-user file. Returns "" when no file
// exists, meaning defaults apply.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{ConfigFileName, GlobalConfigPath()}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
