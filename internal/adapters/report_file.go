package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pkg-sandbox/internal/ports"
	"pkg-sandbox/internal/types"
)

const ReportFile = "verification.yaml"

type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

func (a ReportFileAdapter) WriteReport(path string, report types.VerificationReport) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode verification report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write verification report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadReport(path string) (types.VerificationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.VerificationReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("verification report not found").
			WithCause(err)
	}
	var report types.VerificationReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.VerificationReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid verification report format").
			WithCause(err)
	}
	return report, nil
}

var (
	_ ports.ReportWriterPort = ReportFileAdapter{}
	_ ports.ReportReaderPort = ReportFileAdapter{}
)
