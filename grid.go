package komb

import "errors"

// ErrNoData is returned when no Series holds any sample.
var ErrNoData = errors.New("no data to export: every series is empty")

// ErrInvalidStep is returned when the grid step is not positive.
var ErrInvalidStep = errors.New("grid step must be positive")

// Grid is the regular sequence of timestamps From, From+Step, ...
// up to and including Until.
type Grid struct {
	From  Timestamp
	Until Timestamp
	Step  Duration
}

// GridFor returns the Grid covering all samples of series.
//
// From is the earliest first timestamp and Until the latest last timestamp
// of the non-empty series, both truncated to step. Empty series are left
// out. It returns ErrNoData if every series is empty.
func GridFor(series []*Series, step Duration) (Grid, error) {
	if step <= 0 {
		return Grid{}, ErrInvalidStep
	}

	var from, until Timestamp
	found := false
	for _, s := range series {
		first, ok := s.FirstTimestamp()
		if !ok {
			continue
		}
		last, _ := s.LastTimestamp()
		if !found || first < from {
			from = first
		}
		if !found || last > until {
			until = last
		}
		found = true
	}
	if !found {
		return Grid{}, ErrNoData
	}
	return Grid{
		From:  from.Truncate(step),
		Until: until.Truncate(step),
		Step:  step,
	}, nil
}

// Len returns the number of ticks in g.
func (g Grid) Len() int {
	if g.Step <= 0 || g.Until < g.From {
		return 0
	}
	return int(g.Until.Sub(g.From)/float64(g.Step)) + 1
}

// Tick returns the i-th timestamp of g.
func (g Grid) Tick(i int) Timestamp {
	return g.From.Add(Duration(i) * g.Step)
}

// Ticks returns all timestamps of g.
func (g Grid) Ticks() []Timestamp {
	ticks := make([]Timestamp, g.Len())
	for i := range ticks {
		ticks[i] = g.Tick(i)
	}
	return ticks
}
