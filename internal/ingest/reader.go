// Package ingest reads delimited logger exports into komb Series.
package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/rychenberg/komb"
	"github.com/rychenberg/komb/internal/config"
)

// Structural errors of an input file.
var (
	ErrHeaderRowMissing = errors.New("file has fewer rows than the column identifier row")
	ErrRowWidthMismatch = errors.New("not all rows have the same number of columns")
	ErrNoDataColumns    = errors.New("no data columns right of the timestamp column")
)

// RowError reports a row whose timestamp cannot be parsed.
type RowError struct {
	// Line is the 1-based line number in the file.
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *RowError) Unwrap() error { return e.Err }

// Options tells how to read an input file.
type Options struct {
	Encoding  encoding.Encoding
	Structure config.Structure

	// Location is used for timestamps without a zone. nil means time.Local.
	Location *time.Location
}

// ReadFile reads the file at path. See Read.
func ReadFile(path string, opts Options) ([]*komb.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, opts)
}

// Read reads delimited text from r and returns one Series per column
// right of the timestamp column, named after the header row.
//
// Rows before the header row are skipped. The header row and every row
// after it must have the same number of columns.
func Read(r io.Reader, opts Options) ([]*komb.Series, error) {
	enc := opts.Encoding
	if enc == nil {
		enc = encoding.Nop
	}
	st := opts.Structure
	parser, err := komb.NewTimeParser(st.TimestampFormat, opts.Location)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(bufio.NewReader(r), enc.NewDecoder()))
	cr.Comma = st.Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	for i := 0; i < st.HeaderRow; i++ {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, ErrHeaderRowMissing
			}
			return nil, err
		}
	}
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrHeaderRowMissing
	}
	if err != nil {
		return nil, err
	}
	width := len(header)
	if width-(st.TimestampColumn+1) < 1 {
		return nil, ErrNoDataColumns
	}

	series := make([]*komb.Series, 0, width-st.TimestampColumn-1)
	for _, name := range header[st.TimestampColumn+1:] {
		series = append(series, komb.NewSeries(name))
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(row) != width {
			return nil, errors.Wrapf(ErrRowWidthMismatch, "line %d has %d columns, header has %d", line, len(row), width)
		}

		timeText := row[st.TimestampColumn]
		t, err := parser.Parse(timeText)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		for i, cell := range row[st.TimestampColumn+1:] {
			series[i].AddValueWithTime(t, cell, timeText)
		}
	}
	return series, nil
}
