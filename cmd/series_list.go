package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rychenberg/komb"
)

var errSeriesNotFound = errors.New("series not found")

type SeriesList []*komb.Series

// Select returns the series called one of names, in the order of names.
// Every series of a name is returned when files share a column name.
// Empty names selects all series.
func (sl SeriesList) Select(names []string) (SeriesList, error) {
	if len(names) == 0 {
		return sl, nil
	}
	var selected SeriesList
	for _, name := range names {
		found := false
		for _, s := range sl {
			if s.Name() == name {
				selected = append(selected, s)
				found = true
			}
		}
		if !found {
			return nil, errors.Wrapf(errSeriesNotFound, "%q", name)
		}
	}
	return selected, nil
}

// Print writes the samples of every series with time in [from, until],
// one sample per line.
func (sl SeriesList) Print(w io.Writer, from, until komb.Timestamp, loc *time.Location) error {
	for _, s := range sl {
		for _, p := range s.Samples() {
			if p.Time < from {
				continue
			}
			if p.Time > until {
				break
			}
			_, err := fmt.Fprintf(w, "series:%s\tt:%s\tsrc:%s\tval:%s\n",
				s.Name(), p.Time.Format(time.RFC3339Nano, loc), p.TimeText, p.Text)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
