package encryption

import (
	"bytes"
	"fmt"
)

// pkcs7Pad returns a copy of data extended to the next multiple of blockSize.
// Aligned input gains a whole block of padding.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize

	padded := make([]byte, len(data)+n)
	copy(padded, data)

	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}

	return padded
}

// pkcs7Unpad strips the padding announced by the final byte of data.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidPadding, n)
	}

	body, tail := data[:len(data)-n], data[len(data)-n:]
	if bytes.Count(tail, tail[len(tail)-1:]) != n {
		return nil, ErrInvalidPadding
	}

	return body, nil
}
