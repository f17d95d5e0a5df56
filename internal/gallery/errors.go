package gallery

import "errors"

var (
	// ErrConfiguration reports a manifest that does not match the display.
	ErrConfiguration = errors.New("gallery configuration error")

	// ErrFetch reports a file that could not be retrieved.
	ErrFetch = errors.New("fetching encrypted file")

	// ErrWrongPassphrase reports a probe that did not decrypt into a valid image.
	ErrWrongPassphrase = errors.New("invalid password or corrupted test image")

	// ErrInvalidImage reports decrypted bytes that are not a supported image.
	ErrInvalidImage = errors.New("decrypted data is not a supported image")
)

// Generic returns the user-facing text for a per-photo failure.
// The cause stays in the error chain and in operator logs.
func Generic(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFetch):
		return "file unavailable"
	default:
		return "wrong passphrase or corrupted file"
	}
}
