package adapters

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-sandbox/internal/ports"
	"pkg-sandbox/internal/types"
)

type LockfileFileAdapter struct{}

func NewLockfileFileAdapter() LockfileFileAdapter {
	return LockfileFileAdapter{}
}

func (a LockfileFileAdapter) ReadLockfile(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, types.NewStageError(
			types.ErrorKindMissingArtifact,
			errbuilder.CodeInvalidArgument,
			"lockfile path is empty",
			nil,
		)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, types.NewStageError(
			types.ErrorKindMissingArtifact,
			code,
			fmt.Sprintf("failed to read lockfile %s", path),
			err,
		)
	}
	return content, nil
}

var _ ports.LockfileReaderPort = LockfileFileAdapter{}
