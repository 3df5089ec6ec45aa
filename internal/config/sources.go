package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config file names, in lookup order.
const (
	ProjectConfigName       = "todo.toml"
	HiddenProjectConfigName = ".todo.toml"
	userConfigDirName       = ".todo"
	osConfigDirName         = "todo"
)

// findProjectConfigFile looks for a config file in dir, or in the current
// directory when dir is empty.
func findProjectConfigFile(dir string) string {
	for _, name := range []string{ProjectConfigName, HiddenProjectConfigName} {
		path := name
		if dir != "" {
			path = filepath.Join(dir, name)
		}
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.todo/todo.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	for _, path := range userConfigCandidates() {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

func userConfigCandidates() []string {
	var out []string
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, userConfigDirName, ProjectConfigName))
	}
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		out = append(out, filepath.Join(cfgDir, osConfigDirName, ProjectConfigName))
	}
	return out
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// ConfigFile returns the config file that won, project over user, or "" if
// no file was read.
func (cws *ConfigWithSources) ConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
