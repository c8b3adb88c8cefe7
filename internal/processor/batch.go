package processor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// Pattern matches the district files in scope; everything else in the
// directory is left alone.
const Pattern = "district_*.geojson"

var (
	// ErrDirectoryMissing means the districts directory does not exist.
	ErrDirectoryMissing = errors.New("districts directory not found")
	// ErrNoFiles means the directory holds no matching district files.
	ErrNoFiles = errors.New("no district files found")
)

// RunOptions controls one batch run.
type RunOptions struct {
	Dir    string
	Strict bool // abort the whole run on the first file error
	Backup bool // keep a .bak copy of each original
}

// Totals accumulates byte counts across a run.
type Totals struct {
	Files      int
	Original   int64
	Compressed int64
}

// Reduction is the overall size reduction in percent.
func (t Totals) Reduction() float64 {
	return reduction(t.Original, t.Compressed)
}

func reduction(original, compressed int64) float64 {
	if original == 0 {
		return 0
	}
	return (1 - float64(compressed)/float64(original)) * 100
}

func toMB(b int64) float64 {
	return float64(b) / 1024 / 1024
}

// Run compresses every district file in opts.Dir in sorted filename
// order and returns the accumulated totals. A file that fails to
// process is logged and skipped unless Strict is set.
func Run(opts RunOptions) (Totals, error) {
	var totals Totals

	if _, err := os.Stat(opts.Dir); err != nil {
		if os.IsNotExist(err) {
			return totals, fmt.Errorf("%w: %s", ErrDirectoryMissing, opts.Dir)
		}
		return totals, err
	}

	files, err := filepath.Glob(filepath.Join(opts.Dir, Pattern))
	if err != nil {
		return totals, err
	}
	if len(files) == 0 {
		return totals, fmt.Errorf("%w in %s", ErrNoFiles, opts.Dir)
	}
	sort.Strings(files)

	log.Info().
		Int("files", len(files)).
		Str("dir", opts.Dir).
		Msg("Found district files to compress")

	for _, path := range files {
		name := filepath.Base(path)
		log.Debug().Str("file", name).Msg("Compressing")

		original, compressed, err := CompressFile(path, path, opts.Backup)
		if err != nil {
			if opts.Strict {
				return totals, err
			}
			log.Error().Err(err).Str("file", name).Msg("Failed to compress file, skipping")
			continue
		}

		totals.Files++
		totals.Original += original
		totals.Compressed += compressed

		log.Info().
			Str("file", name).
			Int64("original_bytes", original).
			Int64("compressed_bytes", compressed).
			Str("reduction", fmt.Sprintf("%.1f%%", reduction(original, compressed))).
			Msg("Compressed")
	}

	log.Info().
		Int("files", totals.Files).
		Int64("original_bytes", totals.Original).
		Int64("compressed_bytes", totals.Compressed).
		Str("original_mb", fmt.Sprintf("%.2f", toMB(totals.Original))).
		Str("compressed_mb", fmt.Sprintf("%.2f", toMB(totals.Compressed))).
		Str("reduction", fmt.Sprintf("%.1f%%", totals.Reduction())).
		Str("saved_mb", fmt.Sprintf("%.2f", toMB(totals.Original-totals.Compressed))).
		Msg("Compression summary")

	return totals, nil
}
