// Package encryption implements the photolock file format: a PBKDF2-SHA256 derived key,
// AES-256 in CBC mode with PKCS#7 padding, and the salt || iv || ciphertext framing.
// Encryption streams the plaintext; decryption works on the whole encoded file.
// The batch Processor encrypts a set of files concurrently with atomic writes.
package encryption
