package encryption_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/idelchi/photolock/internal/encryption"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("reading random bytes: %v", err)
	}

	return buf
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()

	for _, size := range []int{0, 1, 15, 16, 17, 31, 32, 33, 1000, 32*1024 - 1, 32 * 1024, 100_000} {
		plaintext := randomBytes(t, size)

		encoded, err := encryption.EncryptBytes(plaintext, "correct horse", params)
		if err != nil {
			t.Fatalf("size %d: EncryptBytes() error: %v", size, err)
		}

		wantLen := params.HeaderSize() + (size/16+1)*16
		if len(encoded) != wantLen {
			t.Errorf("size %d: encoded length = %d, want %d", size, len(encoded), wantLen)
		}

		decoded, err := encryption.Decrypt(encoded, "correct horse", params)
		if err != nil {
			t.Fatalf("size %d: Decrypt() error: %v", size, err)
		}

		if !bytes.Equal(decoded, plaintext) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()
	plaintext := []byte("the same photo, twice")

	first, err := encryption.EncryptBytes(plaintext, "pass", params)
	if err != nil {
		t.Fatal(err)
	}

	second, err := encryption.EncryptBytes(plaintext, "pass", params)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(first, second) {
		t.Fatal("two encodings of the same input are identical")
	}

	if bytes.Equal(first[:params.SaltSize], second[:params.SaltSize]) {
		t.Error("salt reused across encodings")
	}

	for _, encoded := range [][]byte{first, second} {
		decoded, err := encryption.Decrypt(encoded, "pass", params)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}

		if !bytes.Equal(decoded, plaintext) {
			t.Error("round trip mismatch")
		}
	}
}

func TestWrongPassphraseNeverYieldsPlaintext(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()
	plaintext := randomBytes(t, 4096)

	encoded, err := encryption.EncryptBytes(plaintext, "right", params)
	if err != nil {
		t.Fatal(err)
	}

	for _, wrong := range []string{"wrong", "Right", "right ", ""} {
		decoded, err := encryption.Decrypt(encoded, wrong, params)
		if err != nil {
			var decErr *encryption.DecryptionError
			if !errors.As(err, &decErr) {
				t.Errorf("%q: error %v is not a DecryptionError", wrong, err)
			}

			continue
		}

		if bytes.Equal(decoded, plaintext) {
			t.Errorf("%q: wrong passphrase returned the plaintext", wrong)
		}
	}
}

func TestDecryptMalformed(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: encryption.ErrMalformed},
		{name: "salt only", data: make([]byte, 16), want: encryption.ErrMalformed},
		{name: "one short of header", data: make([]byte, 31), want: encryption.ErrMalformed},
		{name: "header without ciphertext", data: make([]byte, 32), want: encryption.ErrEmptyData},
		{name: "partial block", data: make([]byte, 32+15), want: encryption.ErrInvalidBlockSize},
		{name: "block and a half", data: make([]byte, 32+24), want: encryption.ErrInvalidBlockSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := encryption.Decrypt(tt.data, "pass", params)

			var decErr *encryption.DecryptionError
			if !errors.As(err, &decErr) {
				t.Fatalf("Decrypt() error = %v, want DecryptionError", err)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Decrypt() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecryptCorruptedPadding(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()

	// "short" pads to one block ending in eleven 0x0b bytes. Flipping IV bits
	// flips the same plaintext bits of that block.
	encoded, err := encryption.EncryptBytes([]byte("short"), "pass", params)
	if err != nil {
		t.Fatal(err)
	}

	last := params.HeaderSize() - 1

	tests := []struct {
		name   string
		offset int
		mask   byte
	}{
		{name: "zero pad length", offset: last, mask: 0x0b},
		{name: "pad length beyond block", offset: last, mask: 0x1a},
		{name: "inconsistent pad byte", offset: last - 1, mask: 0x01},
	}

	for _, tt := range tests {
		corrupted := bytes.Clone(encoded)
		corrupted[tt.offset] ^= tt.mask

		if _, err := encryption.Decrypt(corrupted, "pass", params); !errors.Is(err, encryption.ErrInvalidPadding) {
			t.Fatalf("%s: Decrypt() error = %v, want ErrInvalidPadding", tt.name, err)
		}
	}
}

func TestSplitUsesFixedOffsets(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()

	data := make([]byte, 50)
	for i := range data {
		data[i] = byte(i)
	}

	salt, iv, ciphertext, err := encryption.Split(data, params)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	if !bytes.Equal(salt, data[:16]) || !bytes.Equal(iv, data[16:32]) || !bytes.Equal(ciphertext, data[32:]) {
		t.Errorf("Split() = %x / %x / %x", salt, iv, ciphertext)
	}
}

func TestStreamingMatchesBuffered(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()
	plaintext := randomBytes(t, 200_000)

	var out bytes.Buffer

	// One byte per Read exercises the block carry-over between chunks.
	if err := encryption.Encrypt(iotest.OneByteReader(bytes.NewReader(plaintext)), &out, "stream", params); err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	decoded, err := encryption.Decrypt(out.Bytes(), "stream", params)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}

	if !bytes.Equal(decoded, plaintext) {
		t.Error("streamed encoding did not round trip")
	}
}

func TestDeriveKeyKnownAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		iterations int
		want       string
	}{
		{iterations: 1, want: "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"},
		{iterations: 2, want: "ae4d0c95af6b46d32d0adff928f06dd02a303f8ef3c251dfd6e2d85a95474c43"},
		{iterations: 4096, want: "c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a"},
	}

	for _, tt := range tests {
		params := encryption.DefaultParams()
		params.Iterations = tt.iterations

		got := hex.EncodeToString(encryption.DeriveKey("password", []byte("salt"), params))
		if got != tt.want {
			t.Errorf("DeriveKey(iterations=%d) = %s, want %s", tt.iterations, got, tt.want)
		}
	}
}

func TestDeriveKeyDependsOnSalt(t *testing.T) {
	t.Parallel()

	params := encryption.DefaultParams()

	a := encryption.DeriveKey("pass", []byte("salt-a"), params)
	b := encryption.DeriveKey("pass", []byte("salt-b"), params)

	if len(a) != 32 {
		t.Fatalf("key length = %d, want 32", len(a))
	}

	if bytes.Equal(a, b) {
		t.Error("different salts derived the same key")
	}
}

func TestMismatchedIterationsFail(t *testing.T) {
	t.Parallel()

	encodeParams := encryption.DefaultParams()
	decodeParams := encryption.DefaultParams()
	decodeParams.Iterations = 2000

	plaintext := []byte("iteration counts must agree on both sides")

	encoded, err := encryption.EncryptBytes(plaintext, "pass", encodeParams)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := encryption.Decrypt(encoded, "pass", decodeParams)
	if err == nil && bytes.Equal(decoded, plaintext) {
		t.Error("decoding with a different iteration count returned the plaintext")
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*encryption.Params)
		ok     bool
	}{
		{name: "default", mutate: func(*encryption.Params) {}, ok: true},
		{name: "aes-128", mutate: func(p *encryption.Params) { p.KeySize = 16 }, ok: true},
		{name: "bad key size", mutate: func(p *encryption.Params) { p.KeySize = 20 }},
		{name: "bad iv size", mutate: func(p *encryption.Params) { p.IVSize = 12 }},
		{name: "zero iterations", mutate: func(p *encryption.Params) { p.Iterations = 0 }},
		{name: "zero salt", mutate: func(p *encryption.Params) { p.SaltSize = 0 }},
	}

	for _, tt := range tests {
		params := encryption.DefaultParams()
		tt.mutate(&params)

		err := params.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: Validate() error: %v", tt.name, err)
		}

		if !tt.ok && !errors.Is(err, encryption.ErrInvalidParams) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidParams", tt.name, err)
		}
	}
}

// interopVector was produced by an independent AES-256-CBC / PBKDF2-SHA256 implementation
// with salt 00..0f, IV 10..1f and passphrase "gallery-secret".
const interopVector = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
	"e4c88c64d9a2be30c50a3416f8c43e2eb4ee4092ef622d33f83b0c8092bef4ad" +
	"d88a79a085f5adb080013834f4413cef"

func TestDecryptInteropVector(t *testing.T) {
	t.Parallel()

	encoded, err := hex.DecodeString(interopVector)
	if err != nil {
		t.Fatal(err)
	}

	got, err := encryption.Decrypt(encoded, "gallery-secret", encryption.DefaultParams())
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}

	if want := "photolock interop vector: salt||iv||aes-256-cbc"; string(got) != want {
		t.Errorf("Decrypt() = %q, want %q", got, want)
	}
}
