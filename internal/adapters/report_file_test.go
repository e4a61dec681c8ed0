package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg-sandbox/internal/types"
)

func TestReportFileAdapter_WriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ReportFile)
	report := types.VerificationReport{
		Package:         "lodash@4.17.21",
		EntryKey:        "node_modules/lodash",
		ResolvedVersion: "4.17.21",
		Integrity:       "sha512-v2kDEe57lecTulaDIuNTPy3Ry4gLGJ6Z1O3vE1krgXZNrsQ+LFTGHVxVjcXPs17LhbZVGedAJv8XZ1tvj5FvSg==",
		Algorithm:       "sha512",
		VersionMatches:  true,
		Deterministic:   false,
		Unpinned:        []string{"node_modules/debug/node_modules/ms"},
		VerifiedAt:      "2026-01-02T03:04:05Z",
	}
	adapter := NewReportFileAdapter()
	require.NoError(t, adapter.WriteReport(path, report))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "entry_key: node_modules/lodash")
	assert.NotContains(t, string(raw), "missing:")

	got, err := adapter.ReadReport(path)
	require.NoError(t, err)
	if diff := cmp.Diff(report, got); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestReportFileAdapter_Errors(t *testing.T) {
	adapter := NewReportFileAdapter()
	require.Error(t, adapter.WriteReport("", types.VerificationReport{}))

	_, err := adapter.ReadReport(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("package: [unterminated"), 0o644))
	_, err = adapter.ReadReport(bad)
	require.Error(t, err)
}
