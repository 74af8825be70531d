package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// DirMode is the permission mode for runtime directories created by
// [MkdirAll].
const DirMode os.FileMode = 0o700

// ProgramName derives an application name from a path to an executable or
// declaration file: the base name without extension, with the dlv debugger's
// "__debug_bin" output mapped to [Name] and leading dots removed.
func ProgramName(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	id := strings.TrimSuffix(base, filepath.Ext(base))

	for _, sub := range programSubst {
		id = sub.rex.ReplaceAllString(id, sub.rep)
	}

	return id
}

//nolint:gochecknoglobals
var programSubst = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d*$`), Name},
}

// Prefix returns the base name of the running executable as normalized by
// [ProgramName]. It names the configuration and cache directories.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]

		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		return ProgramName(id)
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir returns the directory reported by lookup, falling back to a hidden
// directory in the user's home, then to the working directory.
func userDir(lookup func() (string, error), hidden string) string {
	dir, err := lookup()
	if err == nil {
		return dir
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, hidden)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return cwd
}

// ConfigPath returns the path formed by joining the configuration directory
// with the given elements.
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// MkdirAll creates the configuration and cache directories.
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		err := os.MkdirAll(dir, DirMode)
		if err != nil {
			return err
		}
	}

	return nil
}
