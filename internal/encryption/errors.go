package encryption

import "errors"

var (
	// ErrEmptyData is returned when attempting to process empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrMalformed is returned when an encoded file is too short to hold the salt and IV.
	ErrMalformed = errors.New("malformed encoded file")
	// ErrInvalidParams is returned for unusable key derivation or framing parameters.
	ErrInvalidParams = errors.New("invalid parameters")
)

// DecryptionError wraps every failure to turn an encoded file back into plaintext.
// A wrong passphrase and a corrupted file are indistinguishable here.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return "decryption failed: " + e.Err.Error()
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}
