package adapters

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-sandbox/internal/ports"
	"pkg-sandbox/internal/shared"
	"pkg-sandbox/internal/types"
)

const (
	DefaultNpmBinary      = "npm"
	DefaultInstallTimeout = 5 * time.Minute
)

// NpmInstallerAdapter runs `npm install <spec> --prefix .` inside the
// workspace. The npm cache is pointed into the workspace so a run never
// writes to the user's shared cache.
type NpmInstallerAdapter struct {
	Binary  string
	Timeout time.Duration
	Env     []string
}

func NewNpmInstallerAdapter(binary string, timeout time.Duration) NpmInstallerAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultNpmBinary
	}
	if timeout <= 0 {
		timeout = DefaultInstallTimeout
	}
	return NpmInstallerAdapter{Binary: binary, Timeout: timeout}
}

func (a NpmInstallerAdapter) Install(ctx context.Context, workspace types.Workspace, spec types.PackageSpecifier) ([]byte, error) {
	if strings.TrimSpace(workspace.Root) == "" {
		return nil, types.NewStageError(
			types.ErrorKindInstallation,
			errbuilder.CodeInvalidArgument,
			"workspace root is empty",
			nil,
		)
	}
	if strings.TrimSpace(spec.Name) == "" {
		return nil, types.NewStageError(
			types.ErrorKindInstallation,
			errbuilder.CodeInvalidArgument,
			"package name is empty",
			nil,
		)
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultInstallTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := a.args(spec)
	cmd := exec.CommandContext(runCtx, a.binary(), args...)
	cmd.Dir = workspace.Root
	cmd.Env = append(append(os.Environ(), a.Env...),
		"npm_config_cache="+filepath.Join(workspace.Root, ".npm-cache"),
		"npm_config_update_notifier=false",
	)
	log.Ctx(ctx).Info().
		Str("command", a.CommandLine(spec)).
		Str("workspace", workspace.Root).
		Msg("running installer")

	output, err := cmd.CombinedOutput()
	logOutput(ctx, output)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, types.NewStageError(
				types.ErrorKindInstallation,
				errbuilder.CodeInternal,
				fmt.Sprintf("install timed out after %s", timeout),
				shared.CommandError(output, err),
			)
		}
		return nil, types.NewStageError(
			types.ErrorKindInstallation,
			errbuilder.CodeInternal,
			fmt.Sprintf("npm install %s failed", spec),
			shared.CommandError(output, err),
		)
	}

	content, err := os.ReadFile(workspace.LockfilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.NewStageError(
				types.ErrorKindMissingArtifact,
				errbuilder.CodeNotFound,
				fmt.Sprintf("%s was not created", LockfileFile),
				err,
			)
		}
		return nil, types.NewStageError(
			types.ErrorKindMissingArtifact,
			errbuilder.CodeInternal,
			fmt.Sprintf("failed to read %s", LockfileFile),
			err,
		)
	}
	return content, nil
}

func (a NpmInstallerAdapter) binary() string {
	if strings.TrimSpace(a.Binary) == "" {
		return DefaultNpmBinary
	}
	return a.Binary
}

func (a NpmInstallerAdapter) args(spec types.PackageSpecifier) []string {
	return []string{
		"install", spec.String(),
		"--prefix", ".",
		"--no-audit",
		"--no-fund",
	}
}

// CommandLine renders the command Install runs, for progress output.
func (a NpmInstallerAdapter) CommandLine(spec types.PackageSpecifier) string {
	return a.binary() + " " + strings.Join(a.args(spec), " ")
}

func logOutput(ctx context.Context, output []byte) {
	logger := log.Ctx(ctx)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logger.Debug().Str("source", "npm").Msg(line)
	}
}

var _ ports.InstallerPort = NpmInstallerAdapter{}
