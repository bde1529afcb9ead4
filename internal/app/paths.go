package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const Name = "jobtrack"

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", Name), nil
}

func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Name+".log"), nil
}

func DefaultBackupRoot() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backups"), nil
}

func BackupFileName(now time.Time) string {
	return "applications-" + now.Format("20060102-150405") + ".json"
}

// ResolveDataPath makes a configured data file path absolute. Relative paths
// are taken from the working directory; a leading ~ expands to the home dir.
func ResolveDataPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
