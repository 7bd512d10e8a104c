package komb

import (
	"fmt"
	"io"
	"math"
	"time"
)

// RowWriter writes one record of fields. *csv.Writer implements it.
type RowWriter interface {
	Write(record []string) error
}

// TimestampColumnName is the header of the first output column.
const TimestampColumnName = "Timestamp"

// ExportOptions controls how Export formats the output table.
type ExportOptions struct {
	// TimeLayout is the Go time layout of the timestamp column.
	TimeLayout string

	// Location is used to format timestamps. nil means time.Local.
	Location *time.Location

	NumberFormat     NumberFormat
	DecimalSeparator string
}

// Export writes a header row and then one row per tick of grid to w.
// Each row holds the tick formatted with opts.TimeLayout followed by the
// value of every series at that tick. progress may be nil.
func Export(w RowWriter, series []*Series, grid Grid, opts ExportOptions, progress *Progress) error {
	header := make([]string, 0, len(series)+1)
	header = append(header, TimestampColumnName)
	for _, s := range series {
		header = append(header, s.Name())
	}
	if err := w.Write(header); err != nil {
		return err
	}

	n := grid.Len()
	row := make([]string, len(series)+1)
	for i := 0; i < n; i++ {
		t := grid.Tick(i)
		row[0] = t.Format(opts.TimeLayout, opts.Location)
		for j, s := range series {
			row[j+1] = s.ValueAt(t, opts.NumberFormat, opts.DecimalSeparator)
		}
		if err := w.Write(row); err != nil {
			return err
		}
		if n > 1 {
			progress.Update(float64(i) / float64(n-1))
		} else {
			progress.Update(1)
		}
	}
	return nil
}

// Progress prints the completed percentage of a long running loop in
// steps of ten percent, overwriting the same console line.
type Progress struct {
	w    io.Writer
	last int
}

// NewProgress returns a Progress printing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w, last: -1}
}

// Update reports that fraction (0 to 1) of the work is done.
// It is a no-op on a nil Progress.
func (p *Progress) Update(fraction float64) {
	if p == nil {
		return
	}
	current := int(math.Floor(fraction * 10))
	if current > p.last {
		fmt.Fprintf(p.w, "\r%d%%", current*10)
		p.last = current
	}
}

// Done terminates the progress line.
func (p *Progress) Done() {
	if p == nil || p.last < 0 {
		return
	}
	fmt.Fprintln(p.w)
}
