package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-sandbox/internal/types"
)

// lockfileV1Dependency is the nested "dependencies" tree used by
// lockfileVersion 1, which has no flat packages map.
type lockfileV1Dependency struct {
	Version      string                          `json:"version"`
	Resolved     string                          `json:"resolved"`
	Integrity    string                          `json:"integrity"`
	Dev          bool                            `json:"dev"`
	Optional     bool                            `json:"optional"`
	Bundled      bool                            `json:"bundled"`
	Requires     map[string]string               `json:"requires"`
	Dependencies map[string]lockfileV1Dependency `json:"dependencies"`
}

type lockfileDocument struct {
	types.Lockfile
	Dependencies map[string]lockfileV1Dependency `json:"dependencies"`
}

// DecodeLockfile parses package-lock.json content. Version 1 documents are
// flattened into the packages map so callers only deal with one shape.
func DecodeLockfile(content []byte) (types.Lockfile, error) {
	if len(strings.TrimSpace(string(content))) == 0 {
		return types.Lockfile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lockfile is empty")
	}
	var doc lockfileDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return types.Lockfile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lockfile is not valid JSON").
			WithCause(err)
	}
	lock := doc.Lockfile
	if lock.Packages == nil && doc.Dependencies == nil {
		return types.Lockfile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("lockfile (version %d) has neither packages nor dependencies", lock.LockfileVersion))
	}
	if lock.Packages == nil {
		lock.Packages = map[string]types.LockEntry{
			"": {Name: lock.Name, Version: lock.Version},
		}
		flattenV1("", doc.Dependencies, lock.Packages)
	}
	return lock, nil
}

func flattenV1(parent string, deps map[string]lockfileV1Dependency, out map[string]types.LockEntry) {
	for name, dep := range deps {
		key := InstalledPathPrefix + name
		if parent != "" {
			key = parent + "/" + key
		}
		out[key] = types.LockEntry{
			Version:      dep.Version,
			Resolved:     dep.Resolved,
			Integrity:    dep.Integrity,
			Dev:          dep.Dev,
			Optional:     dep.Optional,
			InBundle:     dep.Bundled,
			Dependencies: dep.Requires,
		}
		if len(dep.Dependencies) > 0 {
			flattenV1(key, dep.Dependencies, out)
		}
	}
}
