// Package shared provides common utility functions used across multiple
// packages in the pkg-sandbox codebase.
package shared

import (
	"fmt"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// TruncateHash shortens an integrity hash for display, marking the cut
// with "...".
func TruncateHash(value string, length int) string {
	if length <= 0 || len(value) <= length {
		return value
	}
	return value[:length] + "..."
}
