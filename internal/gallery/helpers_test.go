package gallery_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"sync"
	"testing"

	"github.com/idelchi/photolock/internal/encryption"
	"github.com/idelchi/photolock/internal/gallery"
)

const passphrase = "gallery-secret"

func testImage() image.Image {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	img.SetColorIndex(1, 1, 1)

	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func encodeGIF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func seal(t *testing.T, plaintext []byte) []byte {
	t.Helper()

	data, err := encryption.EncryptBytes(plaintext, passphrase, encryption.DefaultParams())
	if err != nil {
		t.Fatalf("EncryptBytes() error: %v", err)
	}

	return data
}

// mapFetcher serves files from memory and records every request.
type mapFetcher struct {
	mu    sync.Mutex
	files map[string][]byte
	calls []string
}

func (f *mapFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, name)

	data, ok := f.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "fetch", Path: name, Err: gallery.ErrFetch}
	}

	return data, nil
}

func (f *mapFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

// recordingDisplay collects slot outcomes.
type recordingDisplay struct {
	mu     sync.Mutex
	slots  int
	shown  map[int]string
	failed map[int]error
}

func newDisplay(slots int) *recordingDisplay {
	return &recordingDisplay{slots: slots, shown: map[int]string{}, failed: map[int]error{}}
}

func (d *recordingDisplay) Slots() int { return d.slots }

func (d *recordingDisplay) Show(i int, uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.shown[i] = uri
}

func (d *recordingDisplay) Fail(i int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failed[i] = err
}

func newLoader(t *testing.T, fetcher gallery.Fetcher, manifest gallery.Manifest) *gallery.Loader {
	t.Helper()

	loader, err := gallery.NewLoader(fetcher, manifest, encryption.DefaultParams(), gallery.WithParallel(4))
	if err != nil {
		t.Fatalf("NewLoader() error: %v", err)
	}

	return loader
}
