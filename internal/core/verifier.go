package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-sandbox/internal/shared"
	"pkg-sandbox/internal/types"
)

// DefaultDisplayLength is how many characters of an integrity hash are shown
// in progress output.
const DefaultDisplayLength = 20

type Verifier struct {
	DisplayLength int
}

func NewVerifier() Verifier {
	return Verifier{DisplayLength: DefaultDisplayLength}
}

// Verify checks that the lockfile records the requested package with a
// well-formed integrity hash. Presence of the hash is the evidence of a
// deterministic install; package contents are not re-hashed.
func (v Verifier) Verify(ctx context.Context, content []byte, spec types.PackageSpecifier) (types.VerificationResult, error) {
	if err := ValidatePackageName(spec.Name); err != nil {
		return types.VerificationResult{}, err
	}
	lock, err := DecodeLockfile(content)
	if err != nil {
		return types.VerificationResult{}, &types.StageError{Kind: types.ErrorKindParse, Err: err}
	}

	key := LockKey(spec)
	entry, ok := lock.Packages[key]
	if !ok {
		return types.VerificationResult{}, types.NewStageError(
			types.ErrorKindLookup,
			errbuilder.CodeNotFound,
			fmt.Sprintf("no lockfile entry for %s at %s", spec.Name, key),
			nil,
		)
	}
	if strings.TrimSpace(entry.Integrity) == "" {
		return types.VerificationResult{}, types.NewStageError(
			types.ErrorKindMissingIntegrity,
			errbuilder.CodeFailedPrecondition,
			fmt.Sprintf("lockfile entry %s has no integrity hash", key),
			nil,
		)
	}
	integrity, err := ParseIntegrity(entry.Integrity)
	if err != nil {
		return types.VerificationResult{}, types.NewStageError(
			types.ErrorKindMissingIntegrity,
			errbuilder.CodeFailedPrecondition,
			fmt.Sprintf("lockfile entry %s has a malformed integrity hash", key),
			err,
		)
	}

	assert.Assert(ctx, len(integrity.Digest) == integrity.Algorithm.DigestSize(), "integrity digest length must match its algorithm")

	unpinned, missing := walkTree(ctx, lock, key)
	result := types.VerificationResult{
		Package:         spec,
		EntryKey:        key,
		ResolvedVersion: entry.Version,
		Integrity:       entry.Integrity,
		DisplayHash:     shared.TruncateHash(entry.Integrity, v.displayLength()),
		Algorithm:       integrity.Algorithm,
		VersionMatches:  true,
		Deterministic:   len(unpinned) == 0 && len(missing) == 0,
		Unpinned:        unpinned,
		Missing:         missing,
	}
	if IsExactVersion(spec.Version) {
		result.VersionMatches = VersionsEqual(spec.Version, entry.Version)
	}
	log.Ctx(ctx).Debug().
		Str("key", key).
		Str("version", entry.Version).
		Str("algorithm", string(integrity.Algorithm)).
		Int("unpinned", len(unpinned)).
		Msg("lockfile entry verified")
	return result, nil
}

func (v Verifier) displayLength() int {
	if v.DisplayLength <= 0 {
		return DefaultDisplayLength
	}
	return v.DisplayLength
}

// walkTree follows dependencies from the entry at root the way npm's
// node_modules lookup does and reports entries with no integrity hash and
// required dependencies that resolve to no entry. Bundled entries ship
// inside their parent's tarball and carry no integrity of their own.
func walkTree(ctx context.Context, lock types.Lockfile, root string) ([]string, []string) {
	visited := map[string]struct{}{}
	unpinned := map[string]struct{}{}
	missing := map[string]struct{}{}
	// Link targets are local sources and carry no registry integrity.
	local := map[string]struct{}{}

	queue := []string{root}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		entry := lock.Packages[key]
		if entry.Link {
			if _, ok := lock.Packages[entry.Resolved]; ok && entry.Resolved != "" {
				local[entry.Resolved] = struct{}{}
				queue = append(queue, entry.Resolved)
			}
			continue
		}
		_, isLocal := local[key]
		if key != root && !isLocal && !entry.InBundle && strings.TrimSpace(entry.Integrity) == "" {
			unpinned[key] = struct{}{}
		}
		for _, dep := range sortedDependencyNames(entry.Dependencies) {
			found, ok := lookupInstalled(lock, key, dep)
			if !ok {
				missing[dep] = struct{}{}
				continue
			}
			_, exists := lock.Packages[found]
			assert.Assert(ctx, exists, "resolved dependency must have a lockfile entry")
			queue = append(queue, found)
		}
		for _, dep := range sortedDependencyNames(entry.OptionalDependencies) {
			if found, ok := lookupInstalled(lock, key, dep); ok {
				queue = append(queue, found)
			}
		}
	}
	return sortedSet(unpinned), sortedSet(missing)
}

// lookupInstalled resolves dep as seen from the package at from: the
// nearest node_modules directory on the path back to the project root wins.
func lookupInstalled(lock types.Lockfile, from string, dep string) (string, bool) {
	current := from
	for {
		candidate := InstalledPathPrefix + dep
		if current != "" {
			candidate = current + "/" + candidate
		}
		if _, ok := lock.Packages[candidate]; ok {
			return candidate, true
		}
		if current == "" {
			return "", false
		}
		current = parentInstallPath(current)
	}
}

func parentInstallPath(key string) string {
	idx := strings.LastIndex(key, InstalledPathPrefix)
	if idx <= 0 {
		return ""
	}
	return strings.TrimSuffix(key[:idx], "/")
}

func sortedDependencyNames(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedSet(values map[string]struct{}) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for value := range values {
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}
