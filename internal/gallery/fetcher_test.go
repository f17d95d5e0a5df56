package gallery_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/idelchi/photolock/internal/gallery"
)

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/encrypted/1.jpg.enc":
			_, _ = w.Write([]byte("ciphertext"))
		case "/encrypted/broken.jpg.enc":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	fetcher, err := gallery.NewHTTPFetcher(srv.URL+"/encrypted/", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTPFetcher() error: %v", err)
	}

	data, err := fetcher.Fetch(context.Background(), "1.jpg.enc")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if !bytes.Equal(data, []byte("ciphertext")) {
		t.Errorf("Fetch() = %q", data)
	}

	for _, name := range []string{"missing.jpg.enc", "broken.jpg.enc"} {
		if _, err := fetcher.Fetch(context.Background(), name); !errors.Is(err, gallery.ErrFetch) {
			t.Errorf("Fetch(%q) error = %v, want ErrFetch", name, err)
		}
	}
}

func TestHTTPFetcherBaseWithoutTrailingSlash(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/encrypted/1.jpg.enc" {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte("ciphertext"))
	}))
	t.Cleanup(srv.Close)

	fetcher, err := gallery.NewHTTPFetcher(srv.URL+"/encrypted", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTPFetcher() error: %v", err)
	}

	data, err := fetcher.Fetch(context.Background(), "1.jpg.enc")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if !bytes.Equal(data, []byte("ciphertext")) {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestHTTPFetcherHonorsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	t.Cleanup(srv.Close)

	fetcher, err := gallery.NewHTTPFetcher(srv.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fetcher.Fetch(ctx, "1.jpg.enc"); !errors.Is(err, context.Canceled) || !errors.Is(err, gallery.ErrFetch) {
		t.Fatalf("Fetch() error = %v, want canceled ErrFetch", err)
	}
}

func TestNewHTTPFetcherRejectsScheme(t *testing.T) {
	t.Parallel()

	if _, err := gallery.NewHTTPFetcher("ftp://example.com/encrypted/", nil); !errors.Is(err, gallery.ErrConfiguration) {
		t.Fatalf("NewHTTPFetcher() error = %v, want ErrConfiguration", err)
	}
}

func TestFSFetcher(t *testing.T) {
	t.Parallel()

	fetcher := gallery.NewFSFetcher(fstest.MapFS{
		"test.jpg.enc":      {Data: []byte("probe")},
		"holiday/1.jpg.enc": {Data: []byte("one")},
	})

	tests := []struct {
		name string
		want string
		err  bool
	}{
		{name: "test.jpg.enc", want: "probe"},
		{name: "holiday/1.jpg.enc", want: "one"},
		{name: "holiday/../test.jpg.enc", want: "probe"},
		{name: "../outside.enc", err: true},
		{name: "/etc/passwd", err: true},
		{name: "missing.enc", err: true},
	}

	for _, tt := range tests {
		data, err := fetcher.Fetch(context.Background(), tt.name)
		if tt.err {
			if !errors.Is(err, gallery.ErrFetch) {
				t.Errorf("Fetch(%q) error = %v, want ErrFetch", tt.name, err)
			}

			continue
		}

		if err != nil || string(data) != tt.want {
			t.Errorf("Fetch(%q) = %q, %v; want %q", tt.name, data, err, tt.want)
		}
	}
}
