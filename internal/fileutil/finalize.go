// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// tempPattern names in-progress files; they never carry the encoded suffix.
const tempPattern = ".tmp-*"

// ErrNotRegular is returned for sources that are not regular files.
var ErrNotRegular = errors.New("not a regular file")

// RequireRegular stats filename, following symlinks, and rejects anything but a regular file.
func RequireRegular(filename string) (os.FileInfo, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", filename, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q: %w", filename, ErrNotRegular)
	}

	return info, nil
}

// AtomicFile is written under a temporary name in the target's directory
// and only appears under the target name on Commit.
type AtomicFile struct {
	*os.File

	target    string
	committed bool
}

// CreateAtomic opens a temporary file next to target. Callers must defer Abort.
func CreateAtomic(target string) (*AtomicFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), tempPattern)
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicFile{File: tmp, target: target}, nil
}

// Commit sets perm, closes the file and renames it onto the target.
// It returns the size of the committed file.
func (f *AtomicFile) Commit(perm os.FileMode) (int64, error) {
	if err := f.Chmod(perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %q: %w", f.Name(), err)
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(f.Name(), f.target); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	f.committed = true

	return info.Size(), nil
}

// Abort closes and removes the temporary file unless it was committed.
func (f *AtomicFile) Abort() {
	if f.committed {
		return
	}

	_ = f.Close()
	_ = os.Remove(f.Name())
}
