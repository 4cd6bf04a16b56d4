package filesystem

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := homedir.Dir(); err == nil {
		return home
	}
	return "."
}

// ExpandPath resolves a leading "~" and cleans the result.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(expanded)
}

// AppDir is the default root for baseconv's files (~/.baseconv).
func AppDir() string {
	return filepath.Join(UserHomeDir(), ".baseconv")
}
