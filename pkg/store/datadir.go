package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "lodestar"

// DefaultDataDir returns the OS-appropriate default data directory. It holds
// the goals/ tree read by Store, the lodestar.log file, the tasks.db SQLite
// database of linked tasks and an optional config.yaml. It is also the
// working tree that 'lodestar sync' commits.
//
//   - macOS:   ~/Library/Application Support/lodestar
//   - Linux:   $XDG_DATA_HOME/lodestar (fallback ~/.local/share/lodestar)
//   - Windows: %LOCALAPPDATA%\lodestar (fallback %APPDATA%\lodestar)
func DefaultDataDir() string {
	return dataDirForOS(runtime.GOOS)
}

func dataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				return filepath.Join(dir, appName)
			}
		}
		return filepath.Join(home, appName)
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}
