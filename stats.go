package komb

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// StatsTimeLayout is the time layout of the statistics table.
const StatsTimeLayout = "02.01.06 15:04:05"

// WriteStats writes a table with the name, the sample count and the time
// range of each series to w.
func WriteStats(w io.Writer, series []*Series, layout string, loc *time.Location) error {
	sums := make([]Summary, len(series))
	nameWidth := len("Name")
	for i, s := range series {
		sums[i] = s.Summary(layout, loc)
		if n := len([]rune(sums[i].Name)); n > nameWidth {
			nameWidth = n
		}
	}

	format := fmt.Sprintf("%%-%ds  %%8s  %%-17s  %%-17s\n", nameWidth)
	if _, err := fmt.Fprintf(w, format, "Name", "Count", "From...", "Until..."); err != nil {
		return err
	}
	for _, sum := range sums {
		_, err := fmt.Fprintf(w, format, sum.Name, humanize.Comma(int64(sum.Count)), sum.From, sum.Until)
		if err != nil {
			return err
		}
	}
	return nil
}
