package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-sandbox/internal/adapters"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	reportPath := strings.TrimSpace(req.ReportPath)
	if reportPath == "" {
		workspaceDir := strings.TrimSpace(req.WorkspaceDir)
		if workspaceDir == "" {
			return InspectResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("report path or workspace directory is required")
		}
		reportPath = filepath.Join(workspaceDir, adapters.ReportFile)
	}
	report, err := s.ReportReader.ReadReport(reportPath)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{ReportPath: reportPath, Report: report}, nil
}
