// Package logic implements the encoder: selecting the gallery images and encrypting them.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/encryption"
	"github.com/idelchi/photolock/internal/filter"
	"github.com/idelchi/photolock/internal/logging"
)

// Stats summarizes an encoder run.
type Stats struct {
	Scanned   int
	Selected  int
	Processed int
	Errored   int
	Size      int64
	Duration  time.Duration
}

// Run encrypts every image of cfg.SourceDir into cfg.OutputDir with params.
// Configuration errors and an unreadable source directory abort before any file is written;
// per-file failures are logged and do not fail the run.
func Run(cfg *config.Config, params encryption.Params, log *logging.Logger) (Stats, error) {
	start := time.Now()

	if err := cfg.RequirePassphrase(); err != nil {
		return Stats{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	stats, err := resolveFiles(cfg)
	if err != nil {
		return stats, err
	}

	if len(cfg.Files) == 0 {
		log.Printf("No image files found in %s", cfg.SourceDir)

		return stats, nil
	}

	if cfg.Dry {
		dryRun(cfg, log)

		stats.Duration = time.Since(start)

		return stats, nil
	}

	const ownerAll = 0o755

	if err := os.MkdirAll(cfg.OutputDir, ownerAll); err != nil {
		return stats, fmt.Errorf("creating output directory: %w", err)
	}

	proc, err := encryption.NewProcessor(cfg, params, log)
	if err != nil {
		return stats, fmt.Errorf("creating processor: %w", err)
	}

	stats.Processed, stats.Errored, stats.Size = proc.ProcessFiles()
	stats.Duration = time.Since(start)

	return stats, nil
}

// resolveFiles lists the source directory and keeps the image files.
func resolveFiles(cfg *config.Config) (Stats, error) {
	flt, err := filter.NewFilter(filter.ImageExtensions)
	if err != nil {
		return Stats{}, err
	}

	files, scanned, err := filter.Resolve(cfg.SourceDir, flt)
	if err != nil {
		return Stats{}, err
	}

	cfg.Files = files

	return Stats{Scanned: scanned, Selected: len(files)}, nil
}

// dryRun previews what would be written without creating anything.
func dryRun(cfg *config.Config, log *logging.Logger) {
	for _, file := range cfg.Files {
		log.Printf("Would encrypt %q -> %q", file, encryption.OutputPath(file, cfg.OutputDir, cfg.Suffix))
	}
}

// PrintStats writes the run summary to the logger's error stream.
func PrintStats(log *logging.Logger, stats Stats) {
	fmt.Fprintf(log.Err, "\nStats\n")
	fmt.Fprintf(log.Err, "  Scanned:   %d\n", stats.Scanned)
	fmt.Fprintf(log.Err, "  Selected:  %d\n", stats.Selected)
	fmt.Fprintf(log.Err, "  Processed: %d\n", stats.Processed)
	fmt.Fprintf(log.Err, "  Errors:    %d\n", stats.Errored)
	//nolint:gosec // Size is always non-negative (sum of file sizes)
	fmt.Fprintf(log.Err, "  Size:      %s\n", humanize.IBytes(uint64(max(0, stats.Size))))
	fmt.Fprintf(log.Err, "  Duration:  %s\n", stats.Duration.Round(time.Millisecond))
}
