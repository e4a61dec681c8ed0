package types

type Stage string

const (
	StageWorkspace Stage = "workspace"
	StageInstall   Stage = "install"
	StageVerify    Stage = "verify"
)

type HashAlgorithm string

const (
	HashAlgorithmSHA1   HashAlgorithm = "sha1"
	HashAlgorithmSHA256 HashAlgorithm = "sha256"
	HashAlgorithmSHA384 HashAlgorithm = "sha384"
	HashAlgorithmSHA512 HashAlgorithm = "sha512"
)

// DigestSize returns the expected raw digest length in bytes, or 0 for an
// unknown algorithm.
func (a HashAlgorithm) DigestSize() int {
	switch a {
	case HashAlgorithmSHA1:
		return 20
	case HashAlgorithmSHA256:
		return 32
	case HashAlgorithmSHA384:
		return 48
	case HashAlgorithmSHA512:
		return 64
	default:
		return 0
	}
}

// Strength orders algorithms when a lockfile carries more than one SRI token.
func (a HashAlgorithm) Strength() int {
	switch a {
	case HashAlgorithmSHA1:
		return 1
	case HashAlgorithmSHA256:
		return 2
	case HashAlgorithmSHA384:
		return 3
	case HashAlgorithmSHA512:
		return 4
	default:
		return 0
	}
}
