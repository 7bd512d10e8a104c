package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rychenberg/komb/internal/config"
	"github.com/rychenberg/komb/internal/ingest"
)

// loadSeries loads the config file at path and all data files it names.
func loadSeries(ctx context.Context, path string, workers int, loc *time.Location, logger *slog.Logger) (*ingest.Result, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapFileNotExistError(ConfigFile, err)
	}
	if err := expandDataFiles(cfg); err != nil {
		return nil, err
	}
	res, err := ingest.LoadAll(ctx, cfg, workers, loc, logger)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// reportFailed writes one line per data file which could not be loaded.
func reportFailed(w io.Writer, failed []*ingest.FileError) error {
	for _, f := range failed {
		var msg error = f
		if err := WrapFileNotExistError(DataFile, f.Err); AsFileNotExistError(err) != nil {
			msg = err
		}
		if _, err := fmt.Fprintf(w, "Skipped %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}
