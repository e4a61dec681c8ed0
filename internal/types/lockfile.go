package types

// Lockfile mirrors the parts of package-lock.json the verifier reads.
// Packages is keyed by installed path; "" is the root project.
type Lockfile struct {
	Name            string               `json:"name"`
	Version         string               `json:"version"`
	LockfileVersion int                  `json:"lockfileVersion"`
	Packages        map[string]LockEntry `json:"packages"`
}

type LockEntry struct {
	Name                 string            `json:"name,omitempty"`
	Version              string            `json:"version,omitempty"`
	Resolved             string            `json:"resolved,omitempty"`
	Integrity            string            `json:"integrity,omitempty"`
	License              string            `json:"license,omitempty"`
	Dev                  bool              `json:"dev,omitempty"`
	Optional             bool              `json:"optional,omitempty"`
	Link                 bool              `json:"link,omitempty"`
	InBundle             bool              `json:"inBundle,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// Integrity is one parsed Subresource Integrity token.
type Integrity struct {
	Algorithm HashAlgorithm
	Digest    []byte
	Raw       string
}
