package cmd

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rychenberg/komb"
	"github.com/rychenberg/komb/internal/config"
	"github.com/rychenberg/komb/internal/ingest"
)

type CombineCommand struct {
	ConfigPath string
	OutputFile string
	Interval   komb.Duration
	Workers    int
	Report     string
	Location   *time.Location
	Logger     *slog.Logger
}

func (c *CombineCommand) Parse(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.ConfigPath, "config", "", "config file (ex. komb.ini). May also be given as the only argument.")
	fs.StringVar(&c.OutputFile, "out", "", "output file. overrides OutputFileStructure/OutputFile.")
	fs.Var(&durationValue{d: &c.Interval}, "interval", "output interval (ex. 60 or 1m). overrides OutputFileStructure/Interval.")
	if c.Workers == 0 {
		c.Workers = 4
	}
	fs.IntVar(&c.Workers, "workers", c.Workers, "number of data files read in parallel.")
	fs.StringVar(&c.Report, "report", "-", "console report output. empty means no output, - means stdout, other means output file.")
	fs.Var(&locationValue{loc: &c.Location}, "tz", "time zone of timestamps without zone (ex. Europe/Berlin). default is the local time zone.")
	fs.Parse(args)

	return checkConfigArgs(fs, &c.ConfigPath, c.Workers)
}

// checkConfigArgs takes the config file from the only positional argument
// when -config is not given.
func checkConfigArgs(fs *flag.FlagSet, configPath *string, workers int) error {
	if *configPath == "" && fs.NArg() == 1 {
		*configPath = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return errExtraArgs
	}
	if *configPath == "" {
		return newRequiredOptionError(fs, "config")
	}
	if workers < 1 {
		return errWorkersOutOfBounds
	}
	return nil
}

func (c *CombineCommand) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return withReportWriter(c.Report, func(w io.Writer) error {
		return c.execute(ctx, w)
	})
}

func (c *CombineCommand) execute(ctx context.Context, w io.Writer) error {
	logger := loggerOrDefault(c.Logger)
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return WrapFileNotExistError(ConfigFile, err)
	}
	out, err := cfg.Output()
	if err != nil {
		return err
	}
	if c.OutputFile != "" {
		out.File = c.OutputFile
	}
	if c.Interval > 0 {
		out.Interval = c.Interval
	}

	if err := expandDataFiles(cfg); err != nil {
		return err
	}
	res, err := ingest.LoadAll(ctx, cfg, c.Workers, c.Location, logger)
	if err != nil {
		return err
	}
	if err := reportFailed(w, res.Failed); err != nil {
		return err
	}
	if err := komb.WriteStats(w, res.Series, komb.StatsTimeLayout, c.Location); err != nil {
		return err
	}

	layout, err := komb.TranslateTimePattern(out.TimestampFormat)
	if err != nil {
		return err
	}
	grid, err := komb.GridFor(res.Series, out.Interval)
	if err != nil {
		return err
	}

	logger.Info("exporting",
		slog.String("file", out.File),
		slog.Int("columns", len(res.Series)),
		slog.Int("rows", grid.Len()))
	fmt.Fprintf(w, "From %s\n", grid.From.Format(layout, c.Location))
	fmt.Fprintf(w, "Until %s\n", grid.Until.Format(layout, c.Location))

	opts := komb.ExportOptions{
		TimeLayout:       layout,
		Location:         c.Location,
		NumberFormat:     out.NumberFormat,
		DecimalSeparator: out.DecimalSeparator,
	}
	progress := komb.NewProgress(w)
	err = writeOutputFile(out.File, out.Delimiter, func(rw komb.RowWriter) error {
		return komb.Export(rw, res.Series, grid, opts, progress)
	})
	progress.Done()
	if err != nil {
		return WrapFileNotExistError(OutputFile, err)
	}
	return nil
}

func writeOutputFile(filename string, delimiter rune, f func(komb.RowWriter) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	cw := csv.NewWriter(bw)
	cw.Comma = delimiter
	cw.UseCRLF = true
	// Fields with leading blanks, as written by padded number formats, are
	// quoted by csv.Writer. They read back unchanged.
	if err := f(cw); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrapf(err, "cannot write %s", filename)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return err
	}
	return file.Close()
}
