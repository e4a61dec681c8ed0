package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-sandbox/internal/core"
)

// VerifyLockfile checks an existing lockfile without installing anything.
// LockfilePath wins over WorkspaceDir when both are set.
func (s Service) VerifyLockfile(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	spec, err := core.ParseSpecifier(req.Package)
	if err != nil {
		return VerifyResult{}, err
	}
	lockfilePath := strings.TrimSpace(req.LockfilePath)
	if lockfilePath == "" {
		if strings.TrimSpace(req.WorkspaceDir) == "" {
			return VerifyResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("lockfile path or workspace directory is required")
		}
		workspace, err := s.Workspace.Open(req.WorkspaceDir)
		if err != nil {
			return VerifyResult{}, err
		}
		lockfilePath = workspace.LockfilePath
	}
	content, err := s.Lockfiles.ReadLockfile(lockfilePath)
	if err != nil {
		return VerifyResult{}, err
	}
	verification, err := s.verify(ctx, content, spec, req.Strict)
	if err != nil {
		return VerifyResult{}, err
	}
	result := VerifyResult{LockfilePath: lockfilePath, Verification: verification}
	if reportPath := strings.TrimSpace(req.ReportPath); reportPath != "" {
		if err := s.writeReport(reportPath, verification); err != nil {
			return VerifyResult{}, err
		}
		result.ReportPath = filepath.Clean(reportPath)
	}
	return result, nil
}
