// Package config holds the runtime configuration shared by the photolock commands.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingPassphrase is returned when no passphrase was configured for a command that needs one.
var ErrMissingPassphrase = errors.New("missing passphrase")

// Config is populated from flags, environment variables and an optional .env file.
type Config struct {
	// Passphrase shared by the encoder and the gallery visitors.
	Passphrase string `mapstructure:"secret-key" json:"-"`

	// Iterations is the PBKDF2 iteration count; both sides must agree on it.
	Iterations int `label:"PBKDF2_ITERATIONS" mapstructure:"iterations" validate:"min=1"`

	// Encoder
	SourceDir string `label:"--source-dir"  mapstructure:"source-dir"  validate:"required"`
	OutputDir string `label:"--output-dir"  mapstructure:"output-dir"  validate:"required"`
	Suffix    string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	Parallel  int    `label:"--parallel"    mapstructure:"parallel"    validate:"min=1"`
	Quiet     bool   `mapstructure:"quiet"`
	Stats     bool   `mapstructure:"stats"`
	Dry       bool   `mapstructure:"dry"`

	// Decoder
	Manifest string `mapstructure:"manifest"`
	URL      string `mapstructure:"url"`

	Server Server `mapstructure:",squash"`

	// Files holds the selected source images, resolved at run time.
	Files []string `mapstructure:"-"`
}

// Server configures the gallery web surface.
type Server struct {
	Addr            string        `label:"--addr"         mapstructure:"addr"             validate:"required"`
	UnlockRPS       float64       `label:"--unlock-rps"   mapstructure:"unlock-rps"       validate:"gte=0"`
	UnlockBurst     int           `label:"--unlock-burst" mapstructure:"unlock-burst"     validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	if errs := v.Validate(c); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return nil
}

// passphraseCheck carries the passphrase under its environment name for error messages.
type passphraseCheck struct {
	Passphrase string `label:"SECRET_KEY" validate:"passphrase"`
}

// RequirePassphrase reports ErrMissingPassphrase when no passphrase is set.
func (c *Config) RequirePassphrase() error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	if errs := v.Validate(passphraseCheck{Passphrase: c.Passphrase}); len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMissingPassphrase, errors.Join(errs...))
	}

	return nil
}
