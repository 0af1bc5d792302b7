package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// The CLI uses it to drop passwords read from the terminal once they are sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
