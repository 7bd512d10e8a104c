package cmd

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestFileNotExistError(t *testing.T) {
	err := &fileNotExistError{
		kind: ConfigFile,
		cause: &os.PathError{
			Op:   "open",
			Path: "komb.ini",
			Err:  errors.New("file not found"),
		},
	}

	if got, want := AsFileNotExistError(fmt.Errorf("do something: %w", err)), err; got != want {
		t.Errorf("cannot unwrap: got=%v, want=%v", got, want)
	}

	if got := AsFileNotExistError(fmt.Errorf("do something: %s", err)); got != nil {
		t.Errorf("should not unwrap: got=%v, want=%v", got, nil)
	}
}

func TestWrapFileNotExistError(t *testing.T) {
	_, err := os.Open("no-such-file.ini")
	wrapped := WrapFileNotExistError(ConfigFile, err)
	if got, want := wrapped.Error(), "config file: "+err.Error(); got != want {
		t.Errorf("unexpected message, got=%q, want=%q", got, want)
	}
	if !errors.Is(wrapped, os.ErrNotExist) {
		t.Errorf("wrapped error should still match os.ErrNotExist")
	}

	other := errors.New("permission denied")
	if got := WrapFileNotExistError(DataFile, other); got != other {
		t.Errorf("other errors should pass through, got=%v, want=%v", got, other)
	}
	if got := WrapFileNotExistError(DataFile, nil); got != nil {
		t.Errorf("nil should pass through, got=%v", got)
	}
}
