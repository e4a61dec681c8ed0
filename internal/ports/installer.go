package ports

import (
	"context"

	"pkg-sandbox/internal/types"
)

// InstallerPort installs one package into a workspace through an external
// mechanism and returns the lockfile it produced.
type InstallerPort interface {
	Install(ctx context.Context, workspace types.Workspace, spec types.PackageSpecifier) ([]byte, error)
}
