package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Reset(ctx context.Context, req ResetRequest) (ResetResult, error) {
	if strings.TrimSpace(req.WorkspaceDir) == "" {
		return ResetResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace directory is required")
	}
	workspace, err := s.Workspace.Reset(ctx, req.WorkspaceDir)
	if err != nil {
		return ResetResult{}, err
	}
	return ResetResult{Workspace: workspace}, nil
}

func (s Service) Clean(ctx context.Context, req CleanRequest) error {
	if strings.TrimSpace(req.WorkspaceDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace directory is required")
	}
	return s.Workspace.Clean(ctx, req.WorkspaceDir)
}
