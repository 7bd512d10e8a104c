package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rychenberg/komb/internal/config"
)

func writeConfig(t *testing.T, dir string, files ...string) *config.Config {
	t.Helper()
	ini := "[RawData]\n" +
		"DataFiles = " + strings.Join(files, ", ") + "\n" +
		"[RawDataStructure]\n" +
		"Delimiter = ;\n" +
		"ColumnIdentifierRow = 1\n" +
		"TimestampColumn = 1\n" +
		"TimestampFormat = %d.%m.%Y %H:%M:%S\n"
	path := filepath.Join(dir, "komb.ini")
	require.NoError(t, os.WriteFile(path, []byte(ini), 0644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.csv")
	good2 := filepath.Join(dir, "b.csv")
	bad := filepath.Join(dir, "bad.csv")
	missing := filepath.Join(dir, "missing.csv")
	require.NoError(t, os.WriteFile(good1, []byte("Time;A1;A2\n01.01.1970 00:00:00;1;2\n"), 0644))
	require.NoError(t, os.WriteFile(good2, []byte("Time;B\n01.01.1970 00:00:30;3\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("Time;C\nyesterday;4\n"), 0644))

	cfg := writeConfig(t, dir, good1, bad, missing, good2)

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	for _, workers := range []int{1, 4} {
		logBuf.Reset()
		res, err := LoadAll(context.Background(), cfg, workers, time.UTC, logger)
		require.NoError(t, err)

		var names []string
		for _, s := range res.Series {
			names = append(names, s.Name())
		}
		assert.Equal(t, []string{"A1", "A2", "B"}, names, "workers=%d", workers)

		require.Len(t, res.Failed, 2)
		assert.Equal(t, bad, res.Failed[0].Path)
		var rowErr *RowError
		assert.True(t, errors.As(res.Failed[0], &rowErr), "got %v", res.Failed[0])
		assert.Equal(t, missing, res.Failed[1].Path)
		assert.True(t, errors.Is(res.Failed[1], os.ErrNotExist), "got %v", res.Failed[1])

		assert.Contains(t, logBuf.String(), "cannot load file")
		assert.Contains(t, logBuf.String(), "loaded series")
	}
}

func TestLoadAll_StructureErrorFailsEveryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "komb.ini")
	require.NoError(t, os.WriteFile(path, []byte("[RawData]\nDataFiles = a.csv, b.csv\n"), 0644))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	res, err := LoadAll(context.Background(), cfg, 2, time.UTC, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	assert.Empty(t, res.Series)
	require.Len(t, res.Failed, 2)
	for _, f := range res.Failed {
		var mkErr *config.MissingKeyError
		assert.True(t, errors.As(f, &mkErr), "got %v", f)
	}
}

func TestLoadAll_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, filepath.Join(dir, "a.csv"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadAll(ctx, cfg, 1, time.UTC, nil)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)

	cfg.Encoding = "no-such-encoding"
	_, err = LoadAll(context.Background(), cfg, 1, time.UTC, nil)
	assert.Error(t, err)
}
