//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the module embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the semantic version with surrounding whitespace removed.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier. It appears in help
	// text, default config paths, and as the prefix of environment variables.
	Name = "acd"
	// Description is a short, human-readable summary used in help output.
	Description = "Declarative command-line definition engine"
	// Extension is the file extension of declaration files.
	Extension = ".acd"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// EnvPrefix returns the prefix used for environment variable identifiers,
// e.g. "ACD_".
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }
