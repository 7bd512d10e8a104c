package komb

import (
	"math"
	"strconv"
	"strings"
)

// Value represents a value of Sample.
type Value float64

// Sample represents a data point accepted into a Series.
type Sample struct {
	Time  Timestamp
	Value Value

	// Text is the cell content the value was parsed from.
	Text string

	// TimeText is the timestamp cell content of the source row.
	TimeText string
}

// Samples represents a slice of Sample.
type Samples []Sample

// ParseValue parses text as a Value. Every comma is taken as the decimal
// separator, so "3,14" and "3.14" both yield 3.14. Surrounding blanks are
// ignored. It returns false if text is not a finite number.
func ParseValue(text string) (Value, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return Value(f), true
}

// IsNaN returns whether or not v is NaN.
func (v Value) IsNaN() bool {
	return math.IsNaN(float64(v))
}

// String returns the string representation of v.
func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// Equal returns whether or not v equals to u.
// It returns true if both of v and u is NaN,
// or both of v and u is not NaN and v == u.
func (v Value) Equal(u Value) bool {
	pIsNaN := v.IsNaN()
	qIsNaN := u.IsNaN()
	return (pIsNaN && qIsNaN) || (!pIsNaN && !qIsNaN && v == u)
}

// Len is the number of elements in the collection.
// Implements sort.Interface.
func (ss Samples) Len() int { return len(ss) }

// Less reports whether the element with
// index i should sort before the element with index j.
// Implements sort.Interface.
func (ss Samples) Less(i, j int) bool { return ss[i].Time < ss[j].Time }

// Swap swaps the elements with indexes i and j.
// Implements sort.Interface.
func (ss Samples) Swap(i, j int) { ss[i], ss[j] = ss[j], ss[i] }
