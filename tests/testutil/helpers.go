// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// LodashIntegrity is the registry integrity of lodash@4.17.21.
const LodashIntegrity = "sha512-v2kDEe57lecTulaDIuNTPy3Ry4gLGJ6Z1O3vE1krgXZNrsQ+LFTGHVxVjcXPs17LhbZVGedAJv8XZ1tvj5FvSg=="

// LodashLockfile is a v3 lockfile as npm writes it after installing
// lodash@4.17.21 into an empty project.
const LodashLockfile = `{
  "name": "sandbox-project",
  "version": "1.0.0",
  "lockfileVersion": 3,
  "requires": true,
  "packages": {
    "": {
      "name": "sandbox-project",
      "version": "1.0.0",
      "dependencies": {
        "lodash": "^4.17.21"
      }
    },
    "node_modules/lodash": {
      "version": "4.17.21",
      "resolved": "https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz",
      "integrity": "` + LodashIntegrity + `",
      "license": "MIT"
    }
  }
}`

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteFakeNpm writes an executable stand-in for npm that creates the given
// lockfile in its working directory and exits with exitCode.
func WriteFakeNpm(t *testing.T, lockfile string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake npm script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "npm")
	script := "#!/bin/sh\n"
	if lockfile != "" {
		script += "cat > package-lock.json <<'JSON'\n" + lockfile + "\nJSON\n"
	}
	script += "echo \"added packages for $2\"\n"
	script += "exit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}
