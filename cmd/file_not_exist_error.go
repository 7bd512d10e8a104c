package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

type fileNotExistError struct {
	kind  FileKind
	cause error
}

func WrapFileNotExistError(kind FileKind, err error) error {
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return &fileNotExistError{
			kind:  kind,
			cause: err,
		}
	}
	return err
}

func (e *fileNotExistError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

func (e *fileNotExistError) Unwrap() error {
	return e.cause
}

func AsFileNotExistError(err error) *fileNotExistError {
	var err2 *fileNotExistError
	if errors.As(err, &err2) {
		return err2
	}
	return nil
}
