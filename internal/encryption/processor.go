package encryption

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/fileutil"
	"github.com/idelchi/photolock/internal/logging"
)

// outputPerm keeps encoded files readable by the static file server.
const outputPerm = 0o644

// Processor encrypts the selected images of a gallery into the output directory.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// params are the key derivation and framing parameters
	params Params

	// log receives one line per processed file
	log *logging.Logger

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a Processor for cfg.Files encrypting with params.
// The passphrase must already be validated.
func NewProcessor(cfg *config.Config, params Params, log *logging.Logger) (*Processor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Processor{
		cfg:     cfg,
		params:  params,
		log:     log,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently encrypts all files in the configuration.
// A failure on one file is reported and never stops the others.
// Returns the number of successfully processed files, the number of errors and the bytes written.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64) {
	group := errgroup.Group{}
	group.SetLimit(max(1, p.cfg.Parallel))

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if !result.OK() {
				errored++

				p.log.Errorf("Error encrypting %q: %v", result.Source, result.Err)

				continue
			}

			processed++
			totalSize += result.Written

			p.log.Printf("Encrypted %q -> %q", result.Source, result.Target)
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			target := p.OutputPath(file)
			written, err := p.processFile(file, target)

			p.results <- Result{Source: file, Target: target, Written: written, Err: err}

			return nil
		})
	}

	_ = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	return processed, errored, totalSize
}

// processFile encrypts a single image into a temporary file and renames it onto target.
func (p *Processor) processFile(filename, target string) (int64, error) {
	if _, err := fileutil.RequireRegular(filename); err != nil {
		return 0, err
	}

	out, err := fileutil.CreateAtomic(target)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}
	defer out.Abort()

	in, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	if err := Encrypt(in, out, p.cfg.Passphrase, p.params); err != nil {
		return 0, fmt.Errorf("encrypting file: %w", err)
	}

	written, err := out.Commit(outputPerm)
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return written, nil
}

// OutputPath returns <output-dir>/<base name><suffix> for a source image.
func (p *Processor) OutputPath(filename string) string {
	return OutputPath(filename, p.cfg.OutputDir, p.cfg.Suffix)
}

// OutputPath returns <dir>/<base name><suffix>.
func OutputPath(filename, dir, suffix string) string {
	return filepath.Join(dir, filepath.Base(filename)+suffix)
}
