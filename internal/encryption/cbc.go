package encryption

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"sync"
)

// chunkSize is the amount of data read per step of the streaming cipher loops.
// It must stay a multiple of the AES block size.
const chunkSize = 32 * 1024

//nolint:gochecknoglobals
var chunkPool = sync.Pool{
	New: func() any {
		buf := make([]byte, chunkSize)

		return &buf
	},
}

func getChunk() (*[]byte, error) {
	bufp, ok := chunkPool.Get().(*[]byte)
	if !ok {
		return nil, errors.New("invalid buffer type from pool") //nolint:err113
	}

	return bufp, nil
}

// encryptCBC streams r through the CBC encrypter into w one chunk at a time.
// The final, possibly empty, chunk is padded.
func encryptCBC(mode cipher.BlockMode, r io.Reader, w io.Writer) error {
	bufp, err := getChunk()
	if err != nil {
		return err
	}
	defer chunkPool.Put(bufp)

	buf := *bufp

	for {
		n, err := io.ReadFull(r, buf)

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			final := pkcs7Pad(buf[:n], mode.BlockSize())
			mode.CryptBlocks(final, final)

			if _, err := w.Write(final); err != nil {
				return fmt.Errorf("writing final encrypted block: %w", err)
			}

			return nil
		}

		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		mode.CryptBlocks(buf, buf)

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing encrypted chunk: %w", err)
		}
	}
}

// decryptCBC streams r through the CBC decrypter into w.
// The last block is held back until the input ends so its padding can be stripped.
func decryptCBC(mode cipher.BlockMode, r io.Reader, w io.Writer) error {
	bufp, err := getChunk()
	if err != nil {
		return err
	}
	defer chunkPool.Put(bufp)

	buf := *bufp
	blockSize := mode.BlockSize()
	last := make([]byte, 0, blockSize)

	for {
		n, err := io.ReadFull(r, buf)
		if n%blockSize != 0 {
			return ErrInvalidBlockSize
		}

		if n > 0 {
			chunk := buf[:n]
			mode.CryptBlocks(chunk, chunk)

			if len(last) > 0 {
				if _, err := w.Write(last); err != nil {
					return fmt.Errorf("writing decrypted block: %w", err)
				}
			}

			if _, err := w.Write(chunk[:n-blockSize]); err != nil {
				return fmt.Errorf("writing decrypted chunk: %w", err)
			}

			last = append(last[:0], chunk[n-blockSize:]...)
		}

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}

	if len(last) == 0 {
		return ErrEmptyData
	}

	plaintext, err := pkcs7Unpad(last, blockSize)
	if err != nil {
		return fmt.Errorf("removing padding: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return fmt.Errorf("writing final decrypted block: %w", err)
	}

	return nil
}
