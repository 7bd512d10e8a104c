package komb

import (
	"fmt"
	"strings"
	"time"
)

// Go layout elements for strftime directives.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'f': "000000",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
}

// Unpadded Go layout elements used for parsing, so that one digit is
// accepted where strptime accepts it.
var strptimeLayouts = map[byte]string{
	'm': "1",
	'd': "2",
	'I': "3",
	'M': "4",
	'S': "5",
	'f': "999999",
}

// TranslateTimePattern converts a strftime style pattern such as
// "%d.%m.%Y %H:%M:%S" into a Go time layout.
//
// Literal text must not contain characters which Go reads as layout
// elements, since there is no way to escape them in a Go layout.
func TranslateTimePattern(pattern string) (string, error) {
	return translateTimePattern(pattern, nil)
}

// translateTimePattern is TranslateTimePattern with the elements of
// override taking precedence over strftimeLayouts.
func translateTimePattern(pattern string, override map[byte]string) (string, error) {
	var b strings.Builder
	directives := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(pattern) {
			return "", fmt.Errorf("invalid time pattern %q: trailing %%", pattern)
		}
		i++
		d := pattern[i]
		if d == '%' {
			b.WriteByte('%')
			continue
		}
		elem, ok := override[d]
		if !ok {
			elem, ok = strftimeLayouts[d]
		}
		if !ok {
			return "", fmt.Errorf("invalid time pattern %q: unsupported directive %%%c", pattern, d)
		}
		if d == 'f' {
			// Go only accepts fractional seconds right after a period or comma.
			s := b.String()
			if s == "" || (s[len(s)-1] != '.' && s[len(s)-1] != ',') {
				return "", fmt.Errorf("invalid time pattern %q: %%f must follow a period or comma", pattern)
			}
		}
		b.WriteString(elem)
		directives++
	}
	if directives == 0 {
		return "", fmt.Errorf("invalid time pattern %q: no directives", pattern)
	}
	return b.String(), nil
}

// TimeParser parses timestamp cells in a fixed layout.
type TimeParser struct {
	layout      string
	parseLayout string
	loc         *time.Location
}

// NewTimeParser returns a TimeParser for the strftime style pattern.
// Times without a zone in the pattern are taken in loc, or in
// time.Local if loc is nil.
func NewTimeParser(pattern string, loc *time.Location) (*TimeParser, error) {
	layout, err := TranslateTimePattern(pattern)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	parseLayout, err := translateTimePattern(pattern, strptimeLayouts)
	if err != nil {
		return nil, err
	}
	return &TimeParser{layout: layout, parseLayout: parseLayout, loc: loc}, nil
}

// Layout returns the Go time layout of p.
func (p *TimeParser) Layout() string { return p.layout }

// Location returns the location of p.
func (p *TimeParser) Location() *time.Location { return p.loc }

// Parse parses s into a Timestamp.
func (p *TimeParser) Parse(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(p.parseLayout, strings.TrimSpace(s), p.loc)
	if err != nil {
		return 0, err
	}
	return TimestampFromStdTime(t), nil
}

// Format formats t with the layout of p.
func (p *TimeParser) Format(t Timestamp) string {
	return t.Format(p.layout, p.loc)
}
