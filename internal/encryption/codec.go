package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// Encrypt writes salt || iv || AES-CBC(plaintext) to w, reading the plaintext from r in chunks.
// A fresh salt and IV are drawn for every call.
func Encrypt(r io.Reader, w io.Writer, passphrase string, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	hdr, err := newHeader(params)
	if err != nil {
		return err
	}

	block, err := newBlock(passphrase, hdr.salt, params)
	if err != nil {
		return err
	}

	if err := hdr.write(w); err != nil {
		return err
	}

	return encryptCBC(cipher.NewCBCEncrypter(block, hdr.iv), r, w)
}

// EncryptBytes is Encrypt over an in-memory plaintext.
func EncryptBytes(plaintext []byte, passphrase string, params Params) ([]byte, error) {
	var out bytes.Buffer

	out.Grow(params.HeaderSize() + len(plaintext) + aes.BlockSize)

	if err := Encrypt(bytes.NewReader(plaintext), &out, passphrase, params); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Decrypt parses an encoded file and returns its plaintext.
// Every failure is reported as a *DecryptionError.
func Decrypt(data []byte, passphrase string, params Params) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, &DecryptionError{Err: err}
	}

	salt, iv, ciphertext, err := Split(data, params)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	block, err := newBlock(passphrase, salt, params)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	var out bytes.Buffer

	out.Grow(len(ciphertext))

	if err := decryptCBC(cipher.NewCBCDecrypter(block, iv), bytes.NewReader(ciphertext), &out); err != nil {
		return nil, &DecryptionError{Err: err}
	}

	return out.Bytes(), nil
}

func newBlock(passphrase string, salt []byte, params Params) (cipher.Block, error) {
	block, err := aes.NewCipher(DeriveKey(passphrase, salt, params))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return block, nil
}
