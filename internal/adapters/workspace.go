package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-sandbox/internal/ports"
	"pkg-sandbox/internal/types"
)

const (
	ManifestFile = "package.json"
	LockfileFile = "package-lock.json"

	sandboxProjectName    = "sandbox-project"
	sandboxProjectVersion = "1.0.0"
)

// WorkspaceAdapter manages workspaces beneath a single sandbox root. Every
// destructive call checks its target against that root first.
type WorkspaceAdapter struct {
	SandboxRoot string
}

func NewWorkspaceAdapter(sandboxRoot string) WorkspaceAdapter {
	return WorkspaceAdapter{SandboxRoot: sandboxRoot}
}

func (a WorkspaceAdapter) Reset(ctx context.Context, path string) (types.Workspace, error) {
	root, err := a.guard(path)
	if err != nil {
		return types.Workspace{}, err
	}
	if err := os.RemoveAll(root); err != nil {
		return types.Workspace{}, types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeInternal,
			"failed to remove existing workspace",
			err,
		)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return types.Workspace{}, types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeInternal,
			"failed to create workspace directory",
			err,
		)
	}
	workspace := describeWorkspace(root)
	if err := writeManifest(workspace.ManifestPath); err != nil {
		return types.Workspace{}, err
	}
	log.Ctx(ctx).Debug().Str("workspace", root).Msg("workspace reset")
	return workspace, nil
}

func (a WorkspaceAdapter) Open(path string) (types.Workspace, error) {
	if strings.TrimSpace(path) == "" {
		return types.Workspace{}, types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeInvalidArgument,
			"workspace path is empty",
			nil,
		)
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return types.Workspace{}, types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeInvalidArgument,
			"failed to resolve workspace path",
			err,
		)
	}
	info, err := os.Stat(root)
	if err != nil {
		return types.Workspace{}, types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeNotFound,
			"workspace not found",
			err,
		)
	}
	if !info.IsDir() {
		return types.Workspace{}, types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeInvalidArgument,
			fmt.Sprintf("workspace %s is not a directory", root),
			nil,
		)
	}
	return describeWorkspace(root), nil
}

func (a WorkspaceAdapter) Clean(ctx context.Context, path string) error {
	root, err := a.guard(path)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(root); err != nil {
		return types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodeInternal,
			"failed to remove workspace",
			err,
		)
	}
	log.Ctx(ctx).Debug().Str("workspace", root).Msg("workspace removed")
	return nil
}

// guard resolves path and refuses anything that is not the sandbox root or
// a directory beneath it, and anything that would take the caller's own
// working directory or home with it. Symlinks are resolved on both sides
// before comparing, so a link inside the sandbox cannot point a removal
// outside it.
func (a WorkspaceAdapter) guard(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", guardError("workspace path is empty")
	}
	if strings.TrimSpace(a.SandboxRoot) == "" {
		return "", guardError("sandbox root is not configured")
	}
	target, err := resolvePath(path)
	if err != nil {
		return "", types.NewStageError(types.ErrorKindIO, errbuilder.CodeInvalidArgument, "failed to resolve workspace path", err)
	}
	sandbox, err := resolvePath(a.SandboxRoot)
	if err != nil {
		return "", types.NewStageError(types.ErrorKindIO, errbuilder.CodeInvalidArgument, "failed to resolve sandbox root", err)
	}
	if target == filepath.VolumeName(target)+string(filepath.Separator) {
		return "", guardError("refusing to use the filesystem root as a workspace")
	}
	if !isWithin(sandbox, target) {
		return "", types.NewStageError(
			types.ErrorKindIO,
			errbuilder.CodePermissionDenied,
			fmt.Sprintf("workspace %s is outside sandbox root %s", target, sandbox),
			nil,
		)
	}
	if home, err := os.UserHomeDir(); err == nil && containsResolved(target, home) {
		return "", guardError(fmt.Sprintf("workspace %s contains the home directory", target))
	}
	if cwd, err := os.Getwd(); err == nil && containsResolved(target, cwd) {
		return "", guardError(fmt.Sprintf("workspace %s contains the working directory", target))
	}
	return target, nil
}

// resolvePath makes path absolute and resolves symlinks in its deepest
// existing ancestor. Components that do not exist yet are joined back on
// unchanged.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	existing := abs
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}
}

func containsResolved(target string, dir string) bool {
	resolved, err := resolvePath(dir)
	if err != nil {
		resolved = dir
	}
	return isWithin(target, resolved)
}

func guardError(msg string) error {
	return types.NewStageError(types.ErrorKindIO, errbuilder.CodePermissionDenied, msg, nil)
}

// isWithin reports whether path equals base or lies beneath it.
func isWithin(base string, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func describeWorkspace(root string) types.Workspace {
	return types.Workspace{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFile),
		LockfilePath: filepath.Join(root, LockfileFile),
	}
}

func writeManifest(path string) error {
	manifest := types.Manifest{
		Name:         sandboxProjectName,
		Version:      sandboxProjectVersion,
		Private:      true,
		Dependencies: map[string]string{},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return types.NewStageError(types.ErrorKindIO, errbuilder.CodeInternal, "failed to encode manifest", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.NewStageError(types.ErrorKindIO, errbuilder.CodeInternal, "failed to write manifest", err)
	}
	return nil
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
