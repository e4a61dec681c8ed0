package core

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-sandbox/internal/types"
)

// ParseIntegrity parses an SRI string such as "sha512-<base64>". A value may
// hold several whitespace-separated tokens; the strongest well-formed one is
// returned. Unknown algorithms are skipped, and an error is returned only
// when no token is usable.
func ParseIntegrity(value string) (types.Integrity, error) {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return types.Integrity{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("integrity is empty")
	}
	var best types.Integrity
	var lastErr error
	for _, token := range tokens {
		parsed, err := parseIntegrityToken(token)
		if err != nil {
			lastErr = err
			continue
		}
		if parsed.Algorithm.Strength() > best.Algorithm.Strength() {
			best = parsed
		}
	}
	if best.Algorithm == "" {
		return types.Integrity{}, lastErr
	}
	return best, nil
}

func parseIntegrityToken(token string) (types.Integrity, error) {
	// Options after "?" are reserved by the SRI format and carry no digest.
	body, _, _ := strings.Cut(token, "?")
	algo, encoded, ok := strings.Cut(body, "-")
	if !ok || encoded == "" {
		return types.Integrity{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid SRI format: %s", token))
	}
	algorithm := types.HashAlgorithm(strings.ToLower(algo))
	size := algorithm.DigestSize()
	if size == 0 {
		return types.Integrity{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported integrity algorithm: %s", algo))
	}
	digest, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return types.Integrity{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("decoding %s digest", algorithm)).
			WithCause(err)
	}
	if len(digest) != size {
		return types.Integrity{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s digest must be %d bytes, got %d", algorithm, size, len(digest)))
	}
	return types.Integrity{
		Algorithm: algorithm,
		Digest:    digest,
		Raw:       token,
	}, nil
}
