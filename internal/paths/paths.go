// Package paths resolves the configuration and data directories for the
// phonebook CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory created under the platform config/data roots.
const appDirName = "phonebook"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PHONEBOOK_CONFIG_DIR"
	EnvDataDir   = "PHONEBOOK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/phonebook (fallback ~/.config/phonebook)
// macOS:   ~/Library/Application Support/phonebook
// Windows: %APPDATA%/phonebook
func DefaultConfigDir() (string, error) {
	return platformAppDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/phonebook (fallback ~/.local/share/phonebook)
// macOS:   ~/Library/Application Support/phonebook
// Windows: %APPDATA%/phonebook
func DefaultDataDir() (string, error) {
	return platformAppDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// platformAppDir resolves the app directory under an XDG root on Linux and
// under os.UserConfigDir elsewhere. homeRel is the root below $HOME used when
// the XDG variable is unset.
func platformAppDir(xdgEnv, homeRel string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PHONEBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configValue (data_dir in config.yaml) > PHONEBOOK_DATA_DIR env >
// DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
