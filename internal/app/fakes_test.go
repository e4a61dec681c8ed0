package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pkg-sandbox/internal/types"
)

const lodashIntegrity = "sha512-v2kDEe57lecTulaDIuNTPy3Ry4gLGJ6Z1O3vE1krgXZNrsQ+LFTGHVxVjcXPs17LhbZVGedAJv8XZ1tvj5FvSg=="

// fakeInstaller writes a canned lockfile into the workspace the way npm
// would, or fails with a preset error.
type fakeInstaller struct {
	lockfile string
	err      error
	calls    []types.PackageSpecifier
}

func (f *fakeInstaller) Install(_ context.Context, workspace types.Workspace, spec types.PackageSpecifier) ([]byte, error) {
	f.calls = append(f.calls, spec)
	if f.err != nil {
		return nil, f.err
	}
	if err := os.WriteFile(workspace.LockfilePath, []byte(f.lockfile), 0o644); err != nil {
		return nil, err
	}
	return []byte(f.lockfile), nil
}

func (f *fakeInstaller) CommandLine(spec types.PackageSpecifier) string {
	return "fake-install " + spec.String()
}

func lockfileFor(name string, version string, integrity string) string {
	return `{"lockfileVersion": 3, "packages": {"": {"name": "sandbox-project"}, "node_modules/` + name +
		`": {"version": "` + version + `", "integrity": "` + integrity + `"}}}`
}

func newTestService(t *testing.T, installer *fakeInstaller) (Service, string, *bytes.Buffer) {
	t.Helper()
	sandbox := filepath.Join(t.TempDir(), "sandbox")
	progress := &bytes.Buffer{}
	service := NewService(ServiceConfig{SandboxRoot: sandbox, Progress: progress})
	service.Installer = installer
	service.Clock = func() time.Time {
		return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	}
	require.NotNil(t, service.Workspace)
	return service, sandbox, progress
}
