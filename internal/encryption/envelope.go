package encryption

import (
	"crypto/rand"
	"fmt"
	"io"
)

// header is the unencrypted prefix of an encoded file.
type header struct {
	salt []byte
	iv   []byte
}

// newHeader draws a fresh salt and IV from the system CSPRNG.
func newHeader(params Params) (header, error) {
	buf := make([]byte, params.HeaderSize())
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return header{}, fmt.Errorf("generating salt and IV: %w", err)
	}

	return header{salt: buf[:params.SaltSize], iv: buf[params.SaltSize:]}, nil
}

func (h header) write(w io.Writer) error {
	if _, err := w.Write(h.salt); err != nil {
		return fmt.Errorf("writing salt: %w", err)
	}

	if _, err := w.Write(h.iv); err != nil {
		return fmt.Errorf("writing IV: %w", err)
	}

	return nil
}

// Split cuts an encoded file into salt, IV and ciphertext at fixed offsets.
// The returned slices alias data.
func Split(data []byte, params Params) (salt, iv, ciphertext []byte, err error) {
	if len(data) < params.HeaderSize() {
		return nil, nil, nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(data), params.HeaderSize())
	}

	salt = data[:params.SaltSize]
	iv = data[params.SaltSize:params.HeaderSize()]
	ciphertext = data[params.HeaderSize():]

	return salt, iv, ciphertext, nil
}
