package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/rychenberg/komb"
	"github.com/rychenberg/komb/internal/config"
)

// FileError reports an input file which could not be loaded.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Result is the outcome of LoadAll.
type Result struct {
	// Series holds the series of all loaded files in configuration order.
	Series []*komb.Series

	// Failed holds one error per file which could not be loaded.
	Failed []*FileError
}

// LoadAll loads every data file of cfg, at most workers files at a time.
//
// A file which cannot be loaded is logged and recorded in Result.Failed,
// and the other files are still loaded. The returned error is non-nil only
// if ctx is done or the encoding of cfg is unknown.
func LoadAll(ctx context.Context, cfg *config.Config, workers int, loc *time.Location, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	files := cfg.DataFiles
	seriesList := make([][]*komb.Series, len(files))
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i := i
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Info("processing file", slog.String("file", path))
			st, err := cfg.Structure()
			if err != nil {
				errs[i] = err
				return nil
			}
			series, err := ReadFile(path, Options{Encoding: enc, Structure: st, Location: loc})
			if err != nil {
				errs[i] = err
				return nil
			}
			seriesList[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "loading data files")
	}

	res := &Result{}
	for i, path := range files {
		if errs[i] != nil {
			logger.Error("cannot load file", slog.String("file", path), slog.Any("err", errs[i]))
			res.Failed = append(res.Failed, &FileError{Path: path, Err: errs[i]})
			continue
		}
		for _, s := range seriesList[i] {
			malformed, outOfOrder := s.Dropped()
			logger.Debug("loaded series",
				slog.String("file", path),
				slog.String("series", s.Name()),
				slog.String("samples", humanize.Comma(int64(s.Len()))),
				slog.Int("malformed", malformed),
				slog.Int("out_of_order", outOfOrder))
		}
		res.Series = append(res.Series, seriesList[i]...)
	}
	return res, nil
}
