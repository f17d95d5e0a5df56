package gallery

import (
	"encoding/base64"
	"strings"
)

// chunkSize bounds each write into the base64 encoder.
const chunkSize = 32 * 1024

// DataURI renders data as a "data:<mime>;base64,..." URI.
// The bytes are fed to a streaming base64 encoder in chunks.
func DataURI(mime string, data []byte) string {
	var sb strings.Builder

	prefix := "data:" + mime + ";base64,"
	sb.Grow(len(prefix) + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString(prefix)

	enc := base64.NewEncoder(base64.StdEncoding, &sb)

	for start := 0; start < len(data); start += chunkSize {
		end := min(start+chunkSize, len(data))

		// strings.Builder never fails a write.
		_, _ = enc.Write(data[start:end])
	}

	_ = enc.Close()

	return sb.String()
}
