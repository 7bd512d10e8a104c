package cmd

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"time"

	"github.com/rychenberg/komb"
)

// StatsCommand loads the data files of a config file and prints the
// statistics table without writing an output file.
type StatsCommand struct {
	ConfigPath string
	Workers    int
	Report     string
	Location   *time.Location
	Logger     *slog.Logger
}

func (c *StatsCommand) Parse(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.ConfigPath, "config", "", "config file (ex. komb.ini). May also be given as the only argument.")
	if c.Workers == 0 {
		c.Workers = 4
	}
	fs.IntVar(&c.Workers, "workers", c.Workers, "number of data files read in parallel.")
	fs.StringVar(&c.Report, "report", "-", "console report output. empty means no output, - means stdout, other means output file.")
	fs.Var(&locationValue{loc: &c.Location}, "tz", "time zone of timestamps without zone (ex. Europe/Berlin). default is the local time zone.")
	fs.Parse(args)

	return checkConfigArgs(fs, &c.ConfigPath, c.Workers)
}

func (c *StatsCommand) Execute() error {
	return withReportWriter(c.Report, c.execute)
}

func (c *StatsCommand) execute(w io.Writer) error {
	res, err := loadSeries(context.Background(), c.ConfigPath, c.Workers, c.Location, loggerOrDefault(c.Logger))
	if err != nil {
		return err
	}
	if err := reportFailed(w, res.Failed); err != nil {
		return err
	}
	return komb.WriteStats(w, res.Series, komb.StatsTimeLayout, c.Location)
}
