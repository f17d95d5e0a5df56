package gallery

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"net/http"
)

// ValidateImage fully decodes data as a JPEG, PNG or GIF image.
func ValidateImage(data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	if bounds := img.Bounds(); bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return "", fmt.Errorf("%w: empty %s image", ErrInvalidImage, format)
	}

	return format, nil
}

// SniffImage returns the MIME type of data, which must be a supported image type.
func SniffImage(data []byte) (string, error) {
	mime := http.DetectContentType(data)

	switch mime {
	case "image/jpeg", "image/png", "image/gif":
		return mime, nil
	default:
		return "", fmt.Errorf("%w: detected %s", ErrInvalidImage, mime)
	}
}
