package types

type VerificationResult struct {
	Package         PackageSpecifier
	EntryKey        string
	ResolvedVersion string
	Integrity       string
	DisplayHash     string
	Algorithm       HashAlgorithm
	VersionMatches  bool
	Deterministic   bool
	Unpinned        []string
	Missing         []string
}

// VerificationReport is the on-disk form of a VerificationResult.
type VerificationReport struct {
	Package         string   `yaml:"package"`
	EntryKey        string   `yaml:"entry_key"`
	ResolvedVersion string   `yaml:"resolved_version"`
	Integrity       string   `yaml:"integrity"`
	Algorithm       string   `yaml:"algorithm"`
	VersionMatches  bool     `yaml:"version_matches"`
	Deterministic   bool     `yaml:"deterministic"`
	Unpinned        []string `yaml:"unpinned,omitempty"`
	Missing         []string `yaml:"missing,omitempty"`
	VerifiedAt      string   `yaml:"verified_at"`
}
