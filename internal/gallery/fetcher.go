package gallery

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Fetcher retrieves encoded gallery files by their manifest name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// HTTPFetcher fetches files with plain GET requests relative to a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher returns a fetcher for files below the directory base. A nil client means http.DefaultClient.
func NewHTTPFetcher(base string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing gallery url %q: %w", base, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported gallery url %q", ErrConfiguration, base)
	}

	// Names resolve inside the base directory, not next to it.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"

		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFetcher{base: u, client: client}, nil
}

// Fetch GETs name resolved against the base URL. Non-2xx responses are reported as ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, err)
	}

	target := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %q: %s", ErrFetch, name, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, err)
	}

	return data, nil
}

// FSFetcher reads files from a file system, typically the encoder's output directory.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher returns a fetcher reading from fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// Fetch reads name from the file system. Honors ctx only before the read starts.
func (f *FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, err)
	}

	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, fs.ErrInvalid)
	}

	data, err := fs.ReadFile(f.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	return data, nil
}
