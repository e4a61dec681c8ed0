package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/mod/semver"

	"pkg-sandbox/internal/types"
)

// InstalledPathPrefix is where npm places hoisted top-level dependencies.
const InstalledPathPrefix = "node_modules/"

const maxPackageNameLength = 214

// ParseSpecifier splits "name@version" into its parts. Scoped names
// ("@scope/name@1.0.0") keep their leading "@".
func ParseSpecifier(value string) (types.PackageSpecifier, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return types.PackageSpecifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package specifier is empty")
	}
	name, version := trimmed, ""
	searchFrom := 0
	if strings.HasPrefix(trimmed, "@") {
		searchFrom = 1
	}
	if idx := strings.Index(trimmed[searchFrom:], "@"); idx != -1 {
		name = trimmed[:searchFrom+idx]
		version = strings.TrimSpace(trimmed[searchFrom+idx+1:])
		if version == "" {
			return types.PackageSpecifier{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package specifier %q has an empty version", trimmed))
		}
	}
	if err := ValidatePackageName(name); err != nil {
		return types.PackageSpecifier{}, err
	}
	return types.PackageSpecifier{Name: name, Version: version}, nil
}

// ValidatePackageName applies the npm naming rules that matter for building
// a filesystem key: length, no leading dot or underscore, a well-formed
// scope and URL-safe characters only.
func ValidatePackageName(name string) error {
	if name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is empty")
	}
	if len(name) > maxPackageNameLength {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package name %q exceeds %d characters", name, maxPackageNameLength))
	}
	bare := name
	if strings.HasPrefix(name, "@") {
		scope, rest, ok := strings.Cut(name[1:], "/")
		if !ok || scope == "" || rest == "" || strings.Contains(rest, "/") {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("scoped package name %q must look like @scope/name", name))
		}
		if err := validateNamePart(name, scope); err != nil {
			return err
		}
		bare = rest
	}
	return validateNamePart(name, bare)
}

func validateNamePart(full string, part string) error {
	if strings.HasPrefix(part, ".") || strings.HasPrefix(part, "_") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package name %q cannot start with . or _", full))
	}
	for _, r := range part {
		if !isNameRune(r) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package name %q contains invalid character %q", full, r))
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= 'A' && r <= 'Z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	return r == '-' || r == '_' || r == '.' || r == '~'
}

// LockKey is the packages-map key npm uses for a hoisted dependency.
func LockKey(spec types.PackageSpecifier) string {
	return InstalledPathPrefix + spec.Name
}

// IsExactVersion reports whether version pins a single semver release
// rather than a range or dist-tag.
func IsExactVersion(version string) bool {
	canonical, ok := toSemver(version)
	if !ok {
		return false
	}
	return semver.Canonical(canonical) == canonical
}

// VersionsEqual compares two npm versions by semver precedence, falling back
// to string equality when either side is not valid semver.
func VersionsEqual(a string, b string) bool {
	va, okA := toSemver(a)
	vb, okB := toSemver(b)
	if !okA || !okB {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return semver.Compare(va, vb) == 0
}

func toSemver(version string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "=")
	trimmed = strings.TrimPrefix(trimmed, "v")
	if trimmed == "" {
		return "", false
	}
	if idx := strings.Index(trimmed, "+"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	candidate := "v" + trimmed
	if !semver.IsValid(candidate) {
		return "", false
	}
	return candidate, true
}
