package ports

import "pkg-sandbox/internal/types"

type LockfileReaderPort interface {
	ReadLockfile(path string) ([]byte, error)
}

type ReportWriterPort interface {
	WriteReport(path string, report types.VerificationReport) error
}

type ReportReaderPort interface {
	ReadReport(path string) (types.VerificationReport, error)
}
