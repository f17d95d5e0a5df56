// Package commands provides the command-line interface for the photolock tool.
//
// It implements commands for:
//   - encrypting a directory of images into an encoded gallery
//   - serving the encoded gallery behind a password form
//   - viewing the encoded gallery from a terminal
//
// Flags, environment variables and an optional .env file are merged through viper.
package commands

import (
	"fmt"
	"os"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/encryption"
	"github.com/idelchi/photolock/internal/gallery"
)

// params returns the key derivation parameters selected by cfg.
func params(cfg *config.Config) encryption.Params {
	p := encryption.DefaultParams()
	p.Iterations = cfg.Iterations

	return p
}

// manifest returns the configured gallery manifest, or the built-in one.
func manifest(cfg *config.Config) (gallery.Manifest, error) {
	if cfg.Manifest == "" {
		return gallery.DefaultManifest(), nil
	}

	return gallery.LoadManifest(cfg.Manifest)
}

// requireDir reports an error unless dir is an existing directory.
func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("gallery directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("gallery directory: %q is not a directory", dir)
	}

	return nil
}
