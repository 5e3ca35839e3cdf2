// Package keysize estimates repeating-key lengths from ciphertext
// self-similarity and splits buffers into per-key-position columns.
package keysize

import (
	"fmt"
	"math/bits"
	"sort"
)

// SizeDistance pairs a candidate key size with its average normalized
// Hamming distance across sampled adjacent chunks. Lower means the size
// is more likely correct.
type SizeDistance struct {
	Size     int
	Distance float64
}

// HammingDistance returns the number of differing bits between two
// equal-length buffers.
func HammingDistance(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("buffers must have equal length: %d != %d", len(a), len(b))
	}
	var total int
	for i := range a {
		total += bits.OnesCount8(a[i] ^ b[i])
	}
	return total, nil
}

// Distances computes the normalized distance for every candidate key size
// k in [1, maxKeySize) with 2*k <= len(buf): up to chunks consecutive
// non-overlapping k-byte chunks are sampled, each adjacent pair's Hamming
// distance is divided by k, and the results are averaged. The 2*k guard
// ensures at least one chunk pair exists, so the averages never divide by
// zero. Results are ordered ascending by distance; equal distances keep
// ascending size order.
func Distances(buf []byte, chunks, maxKeySize int) []SizeDistance {
	var out []SizeDistance
	for size := 1; size < maxKeySize; size++ {
		if 2*size > len(buf) {
			continue
		}
		sampled := len(buf) / size
		if sampled > chunks {
			sampled = chunks
		}
		pairs := sampled - 1
		if pairs < 1 {
			continue
		}
		var sum float64
		for i := 0; i < pairs; i++ {
			a := buf[i*size : (i+1)*size]
			b := buf[(i+1)*size : (i+2)*size]
			// Equal-length slices by construction.
			d, _ := HammingDistance(a, b)
			sum += float64(d) / float64(size)
		}
		out = append(out, SizeDistance{Size: size, Distance: sum / float64(pairs)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// Probable returns the topN most likely key sizes, best first. It returns
// an empty slice when buf is empty, no size passes the 2*k guard, or topN
// is not positive.
func Probable(buf []byte, topN, chunks, maxKeySize int) []int {
	if topN < 0 {
		topN = 0
	}
	ranked := Distances(buf, chunks, maxKeySize)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	sizes := make([]int, len(ranked))
	for i, sd := range ranked {
		sizes[i] = sd.Size
	}
	return sizes
}

// Transpose deinterleaves buf into keySize streams: stream i holds every
// byte at position p with p % keySize == i, in original relative order.
// A non-positive keySize is a precondition violation and panics.
func Transpose(buf []byte, keySize int) [][]byte {
	if keySize <= 0 {
		panic(fmt.Sprintf("keysize: Transpose called with keySize %d", keySize))
	}
	columns := make([][]byte, keySize)
	for i := range columns {
		columns[i] = make([]byte, 0, len(buf)/keySize+1)
	}
	for i, b := range buf {
		columns[i%keySize] = append(columns[i%keySize], b)
	}
	return columns
}
