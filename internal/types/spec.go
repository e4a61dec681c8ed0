package types

import "strings"

// PackageSpecifier names one dependency to install. Version may be an exact
// version, a range, a dist-tag, or empty (latest).
type PackageSpecifier struct {
	Name    string
	Version string
}

func (p PackageSpecifier) String() string {
	if strings.TrimSpace(p.Version) == "" {
		return p.Name
	}
	return p.Name + "@" + p.Version
}

type Workspace struct {
	Root         string
	ManifestPath string
	LockfilePath string
}

// Manifest is the package.json written into a fresh workspace.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Dependencies map[string]string `json:"dependencies"`
}
