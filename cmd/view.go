package cmd

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/rychenberg/komb"
)

// ViewCommand prints the samples kept for some series of a config file.
type ViewCommand struct {
	ConfigPath string
	Series     string
	From       komb.Timestamp
	Until      komb.Timestamp
	Workers    int
	Report     string
	Location   *time.Location
	Logger     *slog.Logger
}

func (c *ViewCommand) Parse(fs *flag.FlagSet, args []string) error {
	c.From = komb.Timestamp(math.Inf(-1))
	c.Until = komb.Timestamp(math.Inf(1))
	fs.StringVar(&c.ConfigPath, "config", "", "config file (ex. komb.ini). May also be given as the only argument.")
	fs.StringVar(&c.Series, "series", "", "comma separated series names to show. empty means all.")
	fs.Var(&timestampValue{t: &c.From}, "from", "range start time in 2006-01-02T15:04:05Z07:00 format")
	fs.Var(&timestampValue{t: &c.Until}, "until", "range end time in 2006-01-02T15:04:05Z07:00 format")
	if c.Workers == 0 {
		c.Workers = 4
	}
	fs.IntVar(&c.Workers, "workers", c.Workers, "number of data files read in parallel.")
	fs.StringVar(&c.Report, "report", "-", "sample output. empty means no output, - means stdout, other means output file.")
	fs.Var(&locationValue{loc: &c.Location}, "tz", "time zone of timestamps without zone (ex. Europe/Berlin). default is the local time zone.")
	fs.Parse(args)

	if c.From > c.Until {
		return errFromIsAfterUntil
	}
	return checkConfigArgs(fs, &c.ConfigPath, c.Workers)
}

func (c *ViewCommand) Execute() error {
	return withReportWriter(c.Report, c.execute)
}

func (c *ViewCommand) execute(w io.Writer) error {
	res, err := loadSeries(context.Background(), c.ConfigPath, c.Workers, c.Location, loggerOrDefault(c.Logger))
	if err != nil {
		return err
	}
	sl, err := SeriesList(res.Series).Select(splitNames(c.Series))
	if err != nil {
		return err
	}
	return sl.Print(w, c.From, c.Until, c.Location)
}
