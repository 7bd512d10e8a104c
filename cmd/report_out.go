package cmd

import (
	"bufio"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// withReportWriter calls f with the writer for the console report of a
// run. dest "" discards the report, "-" writes it to stdout, and any other
// value appends it to the file of that name.
func withReportWriter(dest string, f func(io.Writer) error) (err error) {
	switch dest {
	case "":
		return f(io.Discard)
	case "-":
		return f(os.Stdout)
	}

	file, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(err, "cannot open file for -report")
	}
	defer func() {
		if err2 := file.Close(); err2 != nil && err == nil {
			err = errors.Wrap(err2, "cannot close file for -report")
		}
	}()

	bw := bufio.NewWriter(file)
	if err := f(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "cannot flush buffer to file for -report")
	}
	return nil
}
