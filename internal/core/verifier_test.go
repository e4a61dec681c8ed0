package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg-sandbox/internal/types"
)

func lodashSpec() types.PackageSpecifier {
	return types.PackageSpecifier{Name: "lodash", Version: "4.17.21"}
}

func TestVerifyLodashScenario(t *testing.T) {
	result, err := NewVerifier().Verify(context.Background(), []byte(lodashLockfile), lodashSpec())
	require.NoError(t, err)

	assert.Equal(t, "node_modules/lodash", result.EntryKey)
	assert.Equal(t, "4.17.21", result.ResolvedVersion)
	assert.Equal(t, lodashIntegrity, result.Integrity)
	assert.True(t, strings.HasPrefix(result.Integrity, "sha512-"))
	assert.Equal(t, types.HashAlgorithmSHA512, result.Algorithm)
	assert.Equal(t, lodashIntegrity[:20]+"...", result.DisplayHash)
	assert.True(t, result.VersionMatches)
	assert.True(t, result.Deterministic)
	assert.Empty(t, result.Unpinned)
	assert.Empty(t, result.Missing)
}

func TestVerifyCustomDisplayLength(t *testing.T) {
	verifier := Verifier{DisplayLength: 10}
	result, err := verifier.Verify(context.Background(), []byte(lodashLockfile), lodashSpec())
	require.NoError(t, err)
	assert.Equal(t, lodashIntegrity[:10]+"...", result.DisplayHash)
}

func TestVerifyMalformedLockfileIsParseError(t *testing.T) {
	truncated := lodashLockfile[:len(lodashLockfile)-40]
	_, err := NewVerifier().Verify(context.Background(), []byte(truncated), lodashSpec())
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindParse, types.KindOf(err))
}

func TestVerifyMissingEntryIsLookupError(t *testing.T) {
	_, err := NewVerifier().Verify(context.Background(), []byte(lodashLockfile), types.PackageSpecifier{Name: "left-pad", Version: "1.3.0"})
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindLookup, types.KindOf(err))
	assert.Contains(t, err.Error(), "node_modules/left-pad")
}

func TestVerifyEmptyIntegrityIsMissingIntegrityError(t *testing.T) {
	content := strings.Replace(lodashLockfile, lodashIntegrity, "", 1)
	_, err := NewVerifier().Verify(context.Background(), []byte(content), lodashSpec())
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindMissingIntegrity, types.KindOf(err))
}

func TestVerifyAbsentIntegrityIsMissingIntegrityError(t *testing.T) {
	content := `{"lockfileVersion": 3, "packages": {"node_modules/lodash": {"version": "4.17.21"}}}`
	_, err := NewVerifier().Verify(context.Background(), []byte(content), lodashSpec())
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindMissingIntegrity, types.KindOf(err))
}

func TestVerifyMalformedIntegrityIsMissingIntegrityError(t *testing.T) {
	content := strings.Replace(lodashLockfile, lodashIntegrity, "sha512-not-base64!", 1)
	_, err := NewVerifier().Verify(context.Background(), []byte(content), lodashSpec())
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindMissingIntegrity, types.KindOf(err))
}

func TestVerifyInvalidNameHasNoKind(t *testing.T) {
	_, err := NewVerifier().Verify(context.Background(), []byte(lodashLockfile), types.PackageSpecifier{Name: ""})
	require.Error(t, err)
	assert.Equal(t, types.ErrorKind(""), types.KindOf(err))
}

func TestVerifyReportsVersionMismatch(t *testing.T) {
	spec := types.PackageSpecifier{Name: "lodash", Version: "4.17.20"}
	result, err := NewVerifier().Verify(context.Background(), []byte(lodashLockfile), spec)
	require.NoError(t, err)
	assert.False(t, result.VersionMatches)
	assert.Equal(t, "4.17.21", result.ResolvedVersion)
}

func TestVerifyRangeDoesNotCheckVersion(t *testing.T) {
	spec := types.PackageSpecifier{Name: "lodash", Version: "^4.0.0"}
	result, err := NewVerifier().Verify(context.Background(), []byte(lodashLockfile), spec)
	require.NoError(t, err)
	assert.True(t, result.VersionMatches)
}

func TestVerifyWalksNestedTree(t *testing.T) {
	spec := types.PackageSpecifier{Name: "app", Version: "1.0.0"}
	result, err := NewVerifier().Verify(context.Background(), []byte(treeLockfile), spec)
	require.NoError(t, err)

	// debug resolves its own nested ms@2.0.0, which has no integrity; the
	// hoisted ms is pinned; the optional fsevents is absent and ignored.
	assert.Equal(t, []string{"node_modules/debug/node_modules/ms"}, result.Unpinned)
	assert.Empty(t, result.Missing)
	assert.False(t, result.Deterministic)
	assert.Equal(t, types.HashAlgorithmSHA256, result.Algorithm)
}

func TestVerifyRecordsMissingDependencies(t *testing.T) {
	content := `{"lockfileVersion": 3, "packages": {
  "node_modules/app": {"version": "1.0.0", "integrity": "` + lodashIntegrity + `", "dependencies": {"ghost": "^1.0.0"}}
}}`
	result, err := NewVerifier().Verify(context.Background(), []byte(content), types.PackageSpecifier{Name: "app"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, result.Missing)
	assert.False(t, result.Deterministic)
}

func TestVerifyFollowsLinks(t *testing.T) {
	content := `{"lockfileVersion": 3, "packages": {
  "node_modules/app": {"version": "1.0.0", "integrity": "` + lodashIntegrity + `", "dependencies": {"local": "*"}},
  "node_modules/local": {"resolved": "packages/local", "link": true},
  "packages/local": {"version": "0.0.1", "dependencies": {"lodash": "^4.0.0"}},
  "node_modules/lodash": {"version": "4.17.21", "integrity": "` + lodashIntegrity + `"}
}}`
	result, err := NewVerifier().Verify(context.Background(), []byte(content), types.PackageSpecifier{Name: "app"})
	require.NoError(t, err)
	assert.Empty(t, result.Unpinned)
	assert.Empty(t, result.Missing)
	assert.True(t, result.Deterministic)
}

func TestVerifyV1Lockfile(t *testing.T) {
	content := `{"name": "legacy", "lockfileVersion": 1, "dependencies": {
  "lodash": {"version": "4.17.21", "integrity": "` + lodashIntegrity + `"}
}}`
	result, err := NewVerifier().Verify(context.Background(), []byte(content), lodashSpec())
	require.NoError(t, err)
	assert.Equal(t, "4.17.21", result.ResolvedVersion)
	assert.True(t, result.Deterministic)
}

func TestParentInstallPath(t *testing.T) {
	assert.Equal(t, "", parentInstallPath("node_modules/a"))
	assert.Equal(t, "node_modules/a", parentInstallPath("node_modules/a/node_modules/b"))
	assert.Equal(t, "node_modules/@s/a", parentInstallPath("node_modules/@s/a/node_modules/@t/b"))
	assert.Equal(t, "", parentInstallPath("packages/local"))
}

func TestVerifySkipsBundledEntries(t *testing.T) {
	content := `{"lockfileVersion": 3, "packages": {
  "node_modules/app": {"version": "1.0.0", "integrity": "` + lodashIntegrity + `", "bundleDependencies": ["vendored"], "dependencies": {"vendored": "^1.0.0"}},
  "node_modules/app/node_modules/vendored": {"version": "1.2.0", "inBundle": true, "dependencies": {"leaf": "^1.0.0"}},
  "node_modules/app/node_modules/leaf": {"version": "1.0.1", "inBundle": true}
}}`
	result, err := NewVerifier().Verify(context.Background(), []byte(content), types.PackageSpecifier{Name: "app"})
	require.NoError(t, err)
	assert.Empty(t, result.Unpinned)
	assert.Empty(t, result.Missing)
	assert.True(t, result.Deterministic)
}

func TestVerifyAcceptsEveryDigestSize(t *testing.T) {
	tests := []struct {
		name      string
		integrity string
		algorithm types.HashAlgorithm
	}{
		{name: "sha1", integrity: "sha1-AAAAAAAAAAAAAAAAAAAAAAAAAAA=", algorithm: types.HashAlgorithmSHA1},
		{name: "sha256", integrity: "sha256-AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=", algorithm: types.HashAlgorithmSHA256},
		{name: "sha384", integrity: "sha384-AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", algorithm: types.HashAlgorithmSHA384},
		{name: "sha512", integrity: lodashIntegrity, algorithm: types.HashAlgorithmSHA512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `{"lockfileVersion": 3, "packages": {"node_modules/lodash": {"version": "4.17.21", "integrity": "` + tt.integrity + `"}}}`
			result, err := NewVerifier().Verify(context.Background(), []byte(content), lodashSpec())
			require.NoError(t, err)
			assert.Equal(t, tt.algorithm, result.Algorithm)
		})
	}
}

func TestWalkTreeResolvesThroughNestedScopes(t *testing.T) {
	app := "node_modules/@s/app"
	mid := app + "/node_modules/@t/mid"
	leaf := mid + "/node_modules/leaf"
	top := "node_modules/top"
	lock := types.Lockfile{Packages: map[string]types.LockEntry{
		app:  {Integrity: lodashIntegrity, Dependencies: map[string]string{"@t/mid": "1"}},
		mid:  {Integrity: lodashIntegrity, Dependencies: map[string]string{"leaf": "1", "top": "1"}},
		leaf: {Dependencies: map[string]string{"top": "1"}},
		top:  {Integrity: lodashIntegrity},
	}}
	var unpinned, missing []string
	assert.NotPanics(t, func() {
		unpinned, missing = walkTree(context.Background(), lock, app)
	})
	assert.Equal(t, []string{leaf}, unpinned)
	assert.Empty(t, missing)
}
