package gallery

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/photolock/internal/encryption"
	"github.com/idelchi/photolock/internal/logging"
)

// Display receives the outcome of each gallery slot.
// Show and Fail may be called concurrently for distinct indices.
type Display interface {
	// Slots is the number of photo slots the display offers.
	Slots() int
	// Show places a decoded photo, as a data URI, in slot i.
	Show(i int, dataURI string)
	// Fail marks slot i as failed.
	Fail(i int, err error)
}

// Photo is the outcome of one gallery slot.
type Photo struct {
	Index   int
	Name    string
	MIME    string
	Size    int
	DataURI string
	Err     error
}

// Loader validates passphrases and loads galleries from a Fetcher.
type Loader struct {
	fetcher  Fetcher
	manifest Manifest
	params   encryption.Params
	parallel int
	log      *logging.Logger
}

// Option customizes a Loader.
type Option func(*Loader)

// WithParallel bounds the number of photos decoded at once.
func WithParallel(n int) Option {
	return func(l *Loader) {
		l.parallel = max(1, n)
	}
}

// WithLogger sets the logger receiving failure causes.
func WithLogger(log *logging.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader returns a Loader for the gallery described by manifest.
func NewLoader(fetcher Fetcher, manifest Manifest, params encryption.Params, opts ...Option) (*Loader, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	l := &Loader{
		fetcher:  fetcher,
		manifest: manifest,
		params:   params,
		parallel: runtime.NumCPU(),
		log:      logging.Discard(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Manifest returns the gallery manifest.
func (l *Loader) Manifest() Manifest {
	return l.manifest
}

// Validate checks passphrase against the probe image.
// A probe that cannot be fetched yields ErrFetch; one that does not decrypt
// into a decodable image yields ErrWrongPassphrase.
func (l *Loader) Validate(ctx context.Context, passphrase string) error {
	data, err := l.fetcher.Fetch(ctx, l.manifest.Probe)
	if err != nil {
		return err
	}

	plaintext, err := encryption.Decrypt(data, passphrase, l.params)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrongPassphrase, err)
	}

	if _, err := ValidateImage(plaintext); err != nil {
		return fmt.Errorf("%w: %w", ErrWrongPassphrase, err)
	}

	return nil
}

// Load validates passphrase and then decodes every photo into display.
// The slot count is checked before anything is fetched. Once the passphrase is accepted
// per-photo failures go to display.Fail and never abort the load.
// The returned slice holds one Photo per slot, in manifest order.
func (l *Loader) Load(ctx context.Context, passphrase string, display Display) ([]Photo, error) {
	if slots := display.Slots(); slots != len(l.manifest.Photos) {
		return nil, fmt.Errorf("%w: expected %d image slots, found %d", ErrConfiguration, len(l.manifest.Photos), slots)
	}

	if err := l.Validate(ctx, passphrase); err != nil {
		return nil, err
	}

	photos := make([]Photo, len(l.manifest.Photos))

	group := errgroup.Group{}
	group.SetLimit(max(1, l.parallel))

	for i, name := range l.manifest.Photos {
		group.Go(func() error {
			photo := l.decode(ctx, passphrase, i, name)
			photos[i] = photo

			if photo.Err != nil {
				l.log.Warnf("Error loading photo %q: %v", name, photo.Err)
				display.Fail(i, photo.Err)

				return nil
			}

			display.Show(i, photo.DataURI)

			return nil
		})
	}

	// Workers never return an error.
	_ = group.Wait()

	return photos, nil
}

// decode fetches, decrypts and renders a single photo.
func (l *Loader) decode(ctx context.Context, passphrase string, i int, name string) Photo {
	photo := Photo{Index: i, Name: name}

	data, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		photo.Err = err

		return photo
	}

	plaintext, err := encryption.Decrypt(data, passphrase, l.params)
	if err != nil {
		photo.Err = err

		return photo
	}

	mime, err := SniffImage(plaintext)
	if err != nil {
		photo.Err = err

		return photo
	}

	photo.MIME = mime
	photo.Size = len(plaintext)
	photo.DataURI = DataURI(mime, plaintext)

	return photo
}
