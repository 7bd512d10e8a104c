package cmd

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rychenberg/komb/internal/config"
)

// expandDataFiles replaces every data file pattern of cfg by the files it
// matches. A pattern without matches is kept so that loading it fails as
// a missing file.
func expandDataFiles(cfg *config.Config) error {
	var files []string
	for _, pattern := range cfg.DataFiles {
		if !hasMeta(pattern) {
			files = append(files, pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	cfg.DataFiles = files
	return nil
}

// hasMeta reports whether path contains any of the magic characters
// recognized by Match.
// NOTE: This code is copied from go/src/path/filepath/match.go
func hasMeta(path string) bool {
	magicChars := `*?[`
	if runtime.GOOS != "windows" {
		magicChars = `*?[\`
	}
	return strings.ContainsAny(path, magicChars)
}
