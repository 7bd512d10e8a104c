package cmd

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/rychenberg/komb"
)

type Command interface {
	Parse(fs *flag.FlagSet, args []string) error
	Execute() error
}

type durationValue struct {
	d *komb.Duration
}

func (v durationValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v durationValue) Set(s string) error {
	d, err := komb.ParseDuration(s)
	if err != nil {
		return err
	}
	if d <= 0 {
		return komb.ErrInvalidStep
	}
	*v.d = d
	return nil
}

type locationValue struct {
	loc **time.Location
}

func (v locationValue) String() string {
	if v.loc == nil || *v.loc == nil {
		return "Local"
	}
	return (*v.loc).String()
}

func (v locationValue) Set(s string) error {
	loc, err := time.LoadLocation(s)
	if err != nil {
		return err
	}
	*v.loc = loc
	return nil
}

// timestampValue parses RFC 3339 times. Infinite values print as empty,
// meaning unbounded.
type timestampValue struct {
	t *komb.Timestamp
}

func (v timestampValue) String() string {
	if v.t == nil || math.IsInf(float64(*v.t), 0) {
		return ""
	}
	return v.t.Format(time.RFC3339, time.UTC)
}

func (v timestampValue) Set(s string) error {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*v.t = komb.TimestampFromStdTime(t)
	return nil
}

type RequiredOptionError struct {
	fs     *flag.FlagSet
	option string
}

func newRequiredOptionError(fs *flag.FlagSet, option string) *RequiredOptionError {
	return &RequiredOptionError{fs: fs, option: option}
}

func (e *RequiredOptionError) Error() string {
	return fmt.Sprintf("option -%s is required.", e.option)
}

func (e *RequiredOptionError) Usage() {
	e.fs.Usage()
}

var errWorkersOutOfBounds = errors.New("workers must be 1 or larger")
var errExtraArgs = errors.New("unexpected arguments after options")
var errFromIsAfterUntil = errors.New("from time must not be after until time")
