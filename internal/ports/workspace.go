package ports

import (
	"context"

	"pkg-sandbox/internal/types"
)

// WorkspacePort owns the isolated directory a single install runs in.
type WorkspacePort interface {
	// Reset removes any existing directory at path, recreates it and writes
	// a fresh manifest with no dependencies. Path must be the configured
	// sandbox root or lie beneath it.
	Reset(ctx context.Context, path string) (types.Workspace, error)

	// Open describes an existing workspace without touching it.
	Open(path string) (types.Workspace, error)

	// Clean removes the workspace directory, under the same path guards as
	// Reset.
	Clean(ctx context.Context, path string) error
}
