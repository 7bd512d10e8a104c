package komb

import (
	"sort"
	"strings"
	"time"
)

// Series is the ordered, append-only store of samples for one named data
// column.
//
// Samples are offered in file order by a single ingestion pass. A sample is
// kept only if its text is a finite number and its time is not older than
// the last kept sample, so the store is sorted by time at every point
// without ever being re-sorted. Once ingestion is done a Series is only
// read, and it is safe to query it from multiple goroutines.
type Series struct {
	name    string
	samples Samples

	malformed  int
	outOfOrder int
}

// NewSeries returns an empty Series with name.
// Line breaks embedded in name are removed.
func NewSeries(name string) *Series {
	return &Series{name: cleanName(name)}
}

func cleanName(name string) string {
	return strings.NewReplacer("\r\n", "", "\r", "", "\n", "").Replace(name)
}

// Name returns the column name of s.
func (s *Series) Name() string { return s.name }

// Len returns the number of stored samples.
func (s *Series) Len() int { return len(s.samples) }

// Samples returns the stored samples. The caller must not modify them.
func (s *Series) Samples() Samples { return s.samples }

// Dropped returns how many offered samples were discarded because
// the text was not a number or the time went backwards.
func (s *Series) Dropped() (malformed, outOfOrder int) {
	return s.malformed, s.outOfOrder
}

// AddValue offers a sample to s. It is discarded silently if text is not
// a finite number or t is older than the last stored sample.
func (s *Series) AddValue(t Timestamp, text string) {
	s.AddValueWithTime(t, text, "")
}

// AddValueWithTime is like AddValue but also records the timestamp text of
// the source row.
func (s *Series) AddValueWithTime(t Timestamp, text, timeText string) {
	v, ok := ParseValue(text)
	if !ok {
		s.malformed++
		return
	}
	if n := len(s.samples); n > 0 && t < s.samples[n-1].Time {
		s.outOfOrder++
		return
	}
	s.samples = append(s.samples, Sample{Time: t, Value: v, Text: text, TimeText: timeText})
}

// FirstTimestamp returns the time of the first sample.
// ok is false if s is empty.
func (s *Series) FirstTimestamp() (t Timestamp, ok bool) {
	if len(s.samples) == 0 {
		return 0, false
	}
	return s.samples[0].Time, true
}

// LastTimestamp returns the time of the last sample.
// ok is false if s is empty.
func (s *Series) LastTimestamp() (t Timestamp, ok bool) {
	if len(s.samples) == 0 {
		return 0, false
	}
	return s.samples[len(s.samples)-1].Time, true
}

// At returns the last sample whose time is at or before t.
// ok is false if s is empty or t lies outside the time range of s.
func (s *Series) At(t Timestamp) (sample Sample, ok bool) {
	n := len(s.samples)
	if n == 0 || t < s.samples[0].Time || t > s.samples[n-1].Time {
		return Sample{}, false
	}
	i := sort.Search(n, func(i int) bool { return s.samples[i].Time > t })
	return s.samples[i-1], true
}

// ValueAt returns the value of s at t formatted with f, with the decimal
// point replaced by decimalSeparator. The value at t is the one of the
// most recent sample at or before t. ValueAt returns an empty string if
// there is no such sample or t is after the last sample.
func (s *Series) ValueAt(t Timestamp, f NumberFormat, decimalSeparator string) string {
	sample, ok := s.At(t)
	if !ok {
		return ""
	}
	str := f.Format(float64(sample.Value))
	if decimalSeparator != "" && decimalSeparator != "." {
		str = strings.ReplaceAll(str, ".", decimalSeparator)
	}
	return str
}

// Summary describes a Series for reports.
type Summary struct {
	Name  string
	Count int
	From  string
	Until string
}

// SummaryPlaceholder is used in place of times of an empty Series.
const SummaryPlaceholder = "-"

// Summary returns the summary of s with times formatted by the Go
// time layout in loc.
func (s *Series) Summary(layout string, loc *time.Location) Summary {
	sum := Summary{
		Name:  s.name,
		Count: len(s.samples),
		From:  SummaryPlaceholder,
		Until: SummaryPlaceholder,
	}
	if first, ok := s.FirstTimestamp(); ok {
		sum.From = first.Format(layout, loc)
	}
	if last, ok := s.LastTimestamp(); ok {
		sum.Until = last.Format(layout, loc)
	}
	return sum
}
