package encryption

import (
	"crypto/aes"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultSaltSize is the number of random salt bytes prefixed to every encoded file.
	DefaultSaltSize = 16
	// DefaultIterations is the PBKDF2 iteration count of the existing file format.
	// It is low by current standards; raising it breaks every previously encoded gallery.
	DefaultIterations = 1000
	// DefaultKeySize selects AES-256.
	DefaultKeySize = 32
)

// Params holds the key derivation and framing parameters shared by the encoder and the decoder.
// Both sides must use the same value or decryption fails.
type Params struct {
	// SaltSize is the length of the salt prefix.
	SaltSize int `mapstructure:"salt-size"`

	// IVSize is the length of the IV following the salt. Must equal the AES block size.
	IVSize int `mapstructure:"iv-size"`

	// Iterations is the PBKDF2 iteration count.
	Iterations int `mapstructure:"iterations"`

	// KeySize is the derived key length in bytes (16, 24 or 32).
	KeySize int `mapstructure:"key-size"`
}

// DefaultParams returns the parameters of the photolock file format.
func DefaultParams() Params {
	return Params{
		SaltSize:   DefaultSaltSize,
		IVSize:     aes.BlockSize,
		Iterations: DefaultIterations,
		KeySize:    DefaultKeySize,
	}
}

// HeaderSize is the length of the unencrypted salt || iv prefix.
func (p Params) HeaderSize() int {
	return p.SaltSize + p.IVSize
}

// Validate reports whether the parameters describe a usable configuration.
func (p Params) Validate() error {
	if p.SaltSize <= 0 {
		return fmt.Errorf("%w: salt size must be positive, got %d", ErrInvalidParams, p.SaltSize)
	}

	if p.IVSize != aes.BlockSize {
		return fmt.Errorf("%w: iv size must be %d, got %d", ErrInvalidParams, aes.BlockSize, p.IVSize)
	}

	if p.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidParams, p.Iterations)
	}

	switch p.KeySize {
	case 16, 24, 32: //nolint:mnd
	default:
		return fmt.Errorf("%w: key size must be 16, 24 or 32, got %d", ErrInvalidParams, p.KeySize)
	}

	return nil
}

// DeriveKey stretches the passphrase and salt into a key with PBKDF2-HMAC-SHA256.
func DeriveKey(passphrase string, salt []byte, params Params) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, params.Iterations, params.KeySize, sha256.New)
}
