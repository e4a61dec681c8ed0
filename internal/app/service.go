package app

import (
	"io"
	"time"

	"pkg-sandbox/internal/adapters"
	"pkg-sandbox/internal/core"
	"pkg-sandbox/internal/ports"
)

type Service struct {
	Workspace    ports.WorkspacePort
	Installer    ports.InstallerPort
	Lockfiles    ports.LockfileReaderPort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	Verifier     core.Verifier
	Progress     io.Writer
	Clock        func() time.Time
}

type ServiceConfig struct {
	SandboxRoot    string
	NpmBinary      string
	InstallTimeout time.Duration
	DisplayLength  int
	Progress       io.Writer
}

func NewService(cfg ServiceConfig) Service {
	verifier := core.NewVerifier()
	if cfg.DisplayLength > 0 {
		verifier.DisplayLength = cfg.DisplayLength
	}
	progress := cfg.Progress
	if progress == nil {
		progress = io.Discard
	}
	reports := adapters.NewReportFileAdapter()
	return Service{
		Workspace:    adapters.NewWorkspaceAdapter(cfg.SandboxRoot),
		Installer:    adapters.NewNpmInstallerAdapter(cfg.NpmBinary, cfg.InstallTimeout),
		Lockfiles:    adapters.NewLockfileFileAdapter(),
		ReportWriter: reports,
		ReportReader: reports,
		Verifier:     verifier,
		Progress:     progress,
		Clock:        time.Now,
	}
}
