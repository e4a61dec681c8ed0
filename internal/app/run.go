package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pkg-sandbox/internal/adapters"
	"pkg-sandbox/internal/core"
	"pkg-sandbox/internal/types"
)

// Run resets the workspace, installs the requested package into it and
// verifies the lockfile the installer produced. The first failing stage
// ends the run.
func (s Service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	spec, err := core.ParseSpecifier(req.Package)
	if err != nil {
		return RunResult{}, err
	}
	workspaceDir := strings.TrimSpace(req.WorkspaceDir)
	if workspaceDir == "" {
		return RunResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace directory is required")
	}
	logger := log.Ctx(ctx).With().Str("package", spec.String()).Logger()

	s.progressf("--- 1. Creating Isolated Sandbox ---\n")
	logger.Debug().Str("stage", string(types.StageWorkspace)).Msg("stage started")
	workspace, err := s.Workspace.Reset(ctx, workspaceDir)
	if err != nil {
		return RunResult{}, err
	}
	s.progressf("Sandbox created successfully.\n")

	s.progressf("--- 2. Installing Package Programmatically ---\n")
	logger.Debug().Str("stage", string(types.StageInstall)).Msg("stage started")
	if describer, ok := s.Installer.(commandDescriber); ok {
		s.progressf("\n$ %s\n", describer.CommandLine(spec))
	}
	lockfile, err := s.Installer.Install(ctx, workspace, spec)
	if err != nil {
		return RunResult{}, err
	}
	s.progressf("Package installed and deterministic %s captured.\n", adapters.LockfileFile)

	s.progressf("--- 3. Verifying Installed Tree Checksum (Integrity) ---\n")
	logger.Debug().Str("stage", string(types.StageVerify)).Msg("stage started")
	verification, err := s.verify(ctx, lockfile, spec, req.Strict)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{Workspace: workspace, Verification: verification}
	if req.WriteReport {
		result.ReportPath = filepath.Join(workspace.Root, adapters.ReportFile)
		if err := s.writeReport(result.ReportPath, verification); err != nil {
			return RunResult{}, err
		}
	}
	logger.Info().
		Str("version", verification.ResolvedVersion).
		Str("integrity", verification.DisplayHash).
		Bool("deterministic", verification.Deterministic).
		Msg("package verified")
	return result, nil
}

// commandDescriber is implemented by installers that run an external
// command, so progress output can echo it.
type commandDescriber interface {
	CommandLine(spec types.PackageSpecifier) string
}

// verify runs the verifier and, in strict mode, turns the advisory checks
// (exact version, fully pinned tree) into failures.
func (s Service) verify(ctx context.Context, lockfile []byte, spec types.PackageSpecifier, strict bool) (types.VerificationResult, error) {
	result, err := s.Verifier.Verify(ctx, lockfile, spec)
	if err != nil {
		return types.VerificationResult{}, err
	}
	logger := log.Ctx(ctx)
	if !result.VersionMatches {
		logger.Warn().
			Str("requested", spec.Version).
			Str("resolved", result.ResolvedVersion).
			Msg("resolved version differs from requested version")
		if strict {
			return types.VerificationResult{}, types.NewStageError(
				types.ErrorKindLookup,
				errbuilder.CodeNotFound,
				fmt.Sprintf("%s resolved to %s, expected %s", spec.Name, result.ResolvedVersion, spec.Version),
				nil,
			)
		}
	}
	if !result.Deterministic {
		logger.Warn().
			Strs("unpinned", result.Unpinned).
			Strs("missing", result.Missing).
			Msg("dependency tree is not fully pinned")
		if strict {
			return types.VerificationResult{}, types.NewStageError(
				types.ErrorKindMissingIntegrity,
				errbuilder.CodeFailedPrecondition,
				fmt.Sprintf("dependency tree of %s is not fully pinned (unpinned=%d missing=%d)",
					spec.Name, len(result.Unpinned), len(result.Missing)),
				nil,
			)
		}
	}
	return result, nil
}

func (s Service) writeReport(path string, result types.VerificationResult) error {
	if s.ReportWriter == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no report writer configured")
	}
	return s.ReportWriter.WriteReport(path, toReport(result, s.now()))
}

func toReport(result types.VerificationResult, at time.Time) types.VerificationReport {
	return types.VerificationReport{
		Package:         result.Package.String(),
		EntryKey:        result.EntryKey,
		ResolvedVersion: result.ResolvedVersion,
		Integrity:       result.Integrity,
		Algorithm:       string(result.Algorithm),
		VersionMatches:  result.VersionMatches,
		Deterministic:   result.Deterministic,
		Unpinned:        result.Unpinned,
		Missing:         result.Missing,
		VerifiedAt:      at.UTC().Format(time.RFC3339),
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s Service) progressf(format string, args ...any) {
	if s.Progress == nil {
		return
	}
	fmt.Fprintf(s.Progress, format, args...)
}
