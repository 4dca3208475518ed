// Package common provides small helpers shared across client layers,
// currently secure wiping of sensitive byte buffers.
package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Use it to scrub passwords from memory once they have been sent.
//
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
