// Package breaker recovers the key and plaintext of a repeating-key XOR
// cipher from ciphertext and a baseline frequency table.
package breaker

import (
	"github.com/verte-zerg/xorcrack/internal/frequency"
	"github.com/verte-zerg/xorcrack/internal/keysize"
	"github.com/verte-zerg/xorcrack/internal/xor"
)

// Params tunes the key-size estimation stage. The caller supplies all
// values; the CLI defaults are 3 candidates, 4 chunks, max size 40.
type Params struct {
	TopN       int
	Chunks     int
	MaxKeySize int
}

// Candidate records the outcome of one attempted key size. OK is false
// when any column of the transposed ciphertext failed to break, in which
// case Key and Plaintext are empty.
type Candidate struct {
	KeySize   int
	Distance  float64
	Score     float64
	Key       string
	Plaintext []byte
	OK        bool
}

// Recovery is a successful repeating-key break.
type Recovery struct {
	Key       string
	KeySize   int
	Score     float64
	Plaintext []byte
}

// Break runs the full pipeline: rank candidate key sizes by normalized
// Hamming distance, transpose the ciphertext into per-key-position
// columns, break each column as a single-byte XOR cipher, aggregate the
// column scores, and decrypt with the best-scoring assembled key.
//
// Every attempted candidate is returned for diagnostics, in estimator
// rank order. The final return is false when no candidate size broke on
// all columns; that is an absence of result, not an error.
func Break(buf []byte, expected frequency.Table, cs frequency.Charset, p Params) (Recovery, []Candidate, bool) {
	topN := p.TopN
	if topN < 0 {
		topN = 0
	}
	ranked := keysize.Distances(buf, p.Chunks, p.MaxKeySize)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	candidates := make([]Candidate, 0, len(ranked))
	for _, sd := range ranked {
		candidates = append(candidates, tryKeySize(buf, sd, expected, cs))
	}

	bestIdx := -1
	for i, c := range candidates {
		if !c.OK {
			continue
		}
		if bestIdx < 0 || c.Score > candidates[bestIdx].Score {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Recovery{}, candidates, false
	}
	best := candidates[bestIdx]
	return Recovery{
		Key:       best.Key,
		KeySize:   best.KeySize,
		Score:     best.Score,
		Plaintext: best.Plaintext,
	}, candidates, true
}

func tryKeySize(buf []byte, sd keysize.SizeDistance, expected frequency.Table, cs frequency.Charset) Candidate {
	candidate := Candidate{KeySize: sd.Size, Distance: sd.Distance}

	columns := keysize.Transpose(buf, sd.Size)
	key := make([]byte, 0, sd.Size)
	var total float64
	for _, column := range columns {
		result, ok := frequency.BreakSingleByte(column, expected, cs)
		if !ok {
			return candidate
		}
		total += result.Score
		key = append(key, byte(result.Key))
	}

	candidate.Score = total / float64(sd.Size)
	candidate.Key = string(key)
	candidate.Plaintext = xor.RepeatingKey(buf, key)
	candidate.OK = true
	return candidate
}
