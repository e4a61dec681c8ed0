package app

import "pkg-sandbox/internal/types"

type RunRequest struct {
	WorkspaceDir string
	Package      string
	Strict       bool
	WriteReport  bool
}

type RunResult struct {
	Workspace    types.Workspace
	Verification types.VerificationResult
	ReportPath   string
}

type VerifyRequest struct {
	LockfilePath string
	WorkspaceDir string
	Package      string
	Strict       bool
	ReportPath   string
}

type VerifyResult struct {
	LockfilePath string
	Verification types.VerificationResult
	ReportPath   string
}

type ResetRequest struct {
	WorkspaceDir string
}

type ResetResult struct {
	Workspace types.Workspace
}

type CleanRequest struct {
	WorkspaceDir string
}

type InspectRequest struct {
	ReportPath   string
	WorkspaceDir string
}

type InspectResult struct {
	ReportPath string
	Report     types.VerificationReport
}
