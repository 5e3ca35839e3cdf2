// Package xor implements raw byte-level XOR primitives.
package xor

import "fmt"

// Fixed XORs two equal-length buffers into a new buffer.
func Fixed(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("buffers must have equal length: %d != %d", len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// SingleByte XORs every byte of buf with b.
func SingleByte(buf []byte, b byte) []byte {
	out := make([]byte, len(buf))
	for i, v := range buf {
		out[i] = v ^ b
	}
	return out
}

// RepeatingKey XORs buf with key cycled across the whole buffer. The
// operation is self-inverse: applying it twice with the same key returns
// the original buffer. An empty key is a programming error and panics.
func RepeatingKey(buf, key []byte) []byte {
	if len(key) == 0 {
		panic("xor: repeating key must not be empty")
	}
	out := make([]byte, len(buf))
	for i, v := range buf {
		out[i] = v ^ key[i%len(key)]
	}
	return out
}
