package types

import (
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type ErrorKind string

const (
	ErrorKindIO               ErrorKind = "IOError"
	ErrorKindInstallation     ErrorKind = "InstallationError"
	ErrorKindMissingArtifact  ErrorKind = "MissingArtifactError"
	ErrorKindParse            ErrorKind = "ParseError"
	ErrorKindLookup           ErrorKind = "LookupError"
	ErrorKindMissingIntegrity ErrorKind = "MissingIntegrityError"
)

// Stage reports which step of a run produces errors of this kind.
func (k ErrorKind) Stage() Stage {
	switch k {
	case ErrorKindIO:
		return StageWorkspace
	case ErrorKindInstallation, ErrorKindMissingArtifact:
		return StageInstall
	default:
		return StageVerify
	}
}

// StageError tags an errbuilder error with the failure kind of a run.
// Cause is kept alongside so its text, such as installer output, always
// reaches the rendered message.
type StageError struct {
	Kind  ErrorKind
	Err   error
	Cause error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	msg := string(e.Kind) + ": " + e.Err.Error()
	if e.Cause != nil && !strings.Contains(msg, e.Cause.Error()) {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func (e *StageError) Stage() Stage {
	return e.Kind.Stage()
}

// NewStageError builds a coded error of the given kind.
func NewStageError(kind ErrorKind, code errbuilder.ErrCode, msg string, cause error) error {
	builder := errbuilder.New().
		WithCode(code).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return &StageError{Kind: kind, Err: builder, Cause: cause}
}

// KindOf returns the kind carried by err, or "" when err has none.
func KindOf(err error) ErrorKind {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind
	}
	return ""
}
