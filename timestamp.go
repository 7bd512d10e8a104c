package komb

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Timestamp is the Unix timestamp, the number of seconds
// elapsed since January 1, 1970 UTC. It may carry a fractional part.
type Timestamp float64

// Duration is whole seconds between two Timestamps.
type Duration int64

// Duration constants
const (
	Second Duration = 1
	Minute          = 60 * Second
	Hour            = 60 * Minute
	Day             = 24 * Hour
	Week            = 7 * Day
)

// TimestampFromStdTime returns t as a Timestamp.
func TimestampFromStdTime(t time.Time) Timestamp {
	return Timestamp(t.Unix()) + Timestamp(t.Nanosecond())/1e9
}

// ToStdTime returns t as a time.Time in loc.
// If loc is nil, time.Local is used.
func (t Timestamp) ToStdTime(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	sec, frac := math.Modf(float64(t))
	nsec := math.Round(frac * 1e9)
	return time.Unix(int64(sec), int64(nsec)).In(loc)
}

// Format returns t formatted with a Go time layout in loc.
func (t Timestamp) Format(layout string, loc *time.Location) string {
	return t.ToStdTime(loc).Format(layout)
}

// String returns the string representation of t in RFC 3339 format in UTC.
func (t Timestamp) String() string {
	return t.ToStdTime(time.UTC).Format(time.RFC3339Nano)
}

// Add returns t+d.
func (t Timestamp) Add(d Duration) Timestamp {
	return t + Timestamp(d)
}

// Sub returns t-u in seconds.
func (t Timestamp) Sub(u Timestamp) float64 {
	return float64(t - u)
}

// Truncate returns the result of rounding t down to a multiple of d
// (since the Unix epoch time). Timestamps before the epoch are rounded
// toward negative infinity. If d <= 0, Truncate returns t.
func (t Timestamp) Truncate(d Duration) Timestamp {
	if d <= 0 {
		return t
	}
	sec := math.Floor(float64(t))
	return Timestamp(sec) - Timestamp(floorMod(int64(sec), int64(d)))
}

// floorMod is x modulo y with the sign of y, like the % operator of
// Python. Go's % takes the sign of x, which would round pre-epoch
// timestamps toward zero.
func floorMod(x, y int64) int64 {
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

// ParseDuration parses a Duration string. It accepts a bare number of
// seconds ("60") or a number followed by one of the units s, m, h, d, w
// ("1m").
func ParseDuration(s string) (Duration, error) {
	if s == "" {
		return 0, errors.New("invalid Duration: empty string")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid Duration: %s", s)
		}
		return Duration(n), nil
	}

	x, rem, err := leadingInt(s)
	if err != nil || len(rem) != 1 {
		return 0, fmt.Errorf("invalid Duration: %s", s)
	}
	unit, err := unitMultiplier(rem)
	if err != nil {
		return 0, fmt.Errorf("invalid Duration: %s: %s", s, err)
	}
	d := Duration(x)
	if d > math.MaxInt64/unit {
		// overflow
		return 0, fmt.Errorf("invalid Duration: %s", s)
	}
	return d * unit, nil
}

var errLeadingInt = errors.New("Duration: bad [0-9]*") // never printed

func leadingInt(s string) (x int64, rem string, err error) {
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if x > math.MaxInt64/10 {
			// overflow
			return 0, "", errLeadingInt
		}
		x = x*10 + int64(c) - '0'
		if x < 0 {
			// overflow
			return 0, "", errLeadingInt
		}
	}
	if i == 0 || (x == 0 && i != 1) {
		// missing digits or redundant leading zeros
		return 0, "", errLeadingInt
	}
	return x, s[i:], nil
}

func unitMultiplier(s string) (d Duration, err error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("invalid unit: %v", s)
	}
	switch s[0] {
	case 's':
		return Second, nil
	case 'm':
		return Minute, nil
	case 'h':
		return Hour, nil
	case 'd':
		return Day, nil
	case 'w':
		return Week, nil
	default:
		return 0, fmt.Errorf("invalid unit: %v", s)
	}
}

// String returns the string representation of d.
func (d Duration) String() string {
	if d == 0 {
		return "0s"
	}
	switch {
	case d%Week == 0:
		return fmt.Sprintf("%dw", d/Week)
	case d%Day == 0:
		return fmt.Sprintf("%dd", d/Day)
	case d%Hour == 0:
		return fmt.Sprintf("%dh", d/Hour)
	case d%Minute == 0:
		return fmt.Sprintf("%dm", d/Minute)
	default:
		return fmt.Sprintf("%ds", d)
	}
}
