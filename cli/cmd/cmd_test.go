package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const winACD = `application: win [
  documentation: "Window test program"
]

integer: window [
  standard: "Y"
  default: "10"
  minimum: "1"
]

boolean: brief [
  additional: "Y"
  default: "N"
]
`

// writeDecl writes src to a declaration file in a temporary directory.
func writeDecl(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "win.acd")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}
