package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"
)

const (
	// DefaultProbe is the encoded file used to validate a passphrase.
	DefaultProbe = "test.jpg.enc"

	// DefaultSlots is the number of photo slots of the default gallery page.
	DefaultSlots = 10
)

// Manifest names the encoded files of a gallery, relative to its base.
type Manifest struct {
	Probe  string   `json:"probe"`
	Photos []string `json:"photos"`
	Slots  int      `json:"slots"`
}

// DefaultManifest returns the built-in gallery: probe "test.jpg.enc" and photos "1.jpg.enc" to "10.jpg.enc".
func DefaultManifest() Manifest {
	photos := make([]string, 0, DefaultSlots)
	for i := 1; i <= DefaultSlots; i++ {
		photos = append(photos, strconv.Itoa(i)+".jpg.enc")
	}

	return Manifest{
		Probe:  DefaultProbe,
		Photos: photos,
		Slots:  DefaultSlots,
	}
}

// LoadManifest reads a JSONC manifest. Missing fields fall back to the defaults,
// except photos: an explicit list always wins.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	return ParseManifest(data)
}

// ParseManifest parses JSONC manifest bytes.
func ParseManifest(data []byte) (Manifest, error) {
	clean := jsonc.ToJSONInPlace(data)

	var manifest Manifest
	if err := json.Unmarshal(clean, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}

	defaults := DefaultManifest()

	if manifest.Probe == "" {
		manifest.Probe = defaults.Probe
	}

	if manifest.Photos == nil {
		manifest.Photos = defaults.Photos
	}

	if manifest.Slots == 0 {
		manifest.Slots = len(manifest.Photos)
	}

	if manifest.Slots < 0 {
		return Manifest{}, fmt.Errorf("%w: negative slot count %d", ErrConfiguration, manifest.Slots)
	}

	return manifest, nil
}
