// Package filter selects the gallery images in a source directory.
package filter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrSourceDir is returned when the source directory cannot be listed.
var ErrSourceDir = errors.New("reading source directory")

// ImageExtensions are the extensions selected by default, matched case-insensitively.
//
//nolint:gochecknoglobals
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// Filter selects files by extension, ignoring case.
type Filter struct {
	extensions map[string]struct{}
}

// NewFilter builds a filter for the given extensions. A leading dot is optional.
func NewFilter(extensions []string) (*Filter, error) {
	if len(extensions) == 0 {
		return nil, errors.New("no extensions to select")
	}

	flt := &Filter{extensions: make(map[string]struct{}, len(extensions))}

	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return nil, fmt.Errorf("invalid extension %q", ext)
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		flt.extensions[ext] = struct{}{}
	}

	return flt, nil
}

// Match reports whether the file name carries one of the selected extensions.
func (f *Filter) Match(name string) bool {
	_, ok := f.extensions[strings.ToLower(filepath.Ext(name))]

	return ok
}

// Resolve lists dir (not recursively) and returns the paths of the non-directory entries the
// filter selects, in lexical order, together with the number of entries scanned.
func Resolve(dir string, flt *Filter) (files []string, scanned int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("%w %q: %w", ErrSourceDir, dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		scanned++

		if !flt.Match(entry.Name()) {
			continue
		}

		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)

	return files, scanned, nil
}
