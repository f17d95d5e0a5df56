package encryption

// Result is the outcome of encrypting one source image.
type Result struct {
	Source string
	Target string
	// Written is the size of the encoded file.
	Written int64
	Err     error
}

// OK reports whether the image was encoded.
func (r Result) OK() bool {
	return r.Err == nil
}
