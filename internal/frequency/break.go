package frequency

import (
	"math"
	"unicode/utf8"

	"github.com/verte-zerg/xorcrack/internal/xor"
)

// Score measures how closely the character distribution of text matches
// the expected table, as the sum of sqrt(expected*actual) over the charset
// (a Bhattacharyya-style affinity). Higher is better; both the breaker and
// the repeating-key selection rank by this same convention.
func Score(text string, expected Table, cs Charset) float64 {
	actual := Build(cs, text)
	var total float64
	for _, r := range cs.Runes() {
		total += math.Sqrt(expected[r] * actual[r])
	}
	return total
}

// BreakResult holds the best single-byte XOR attempt for a buffer.
type BreakResult struct {
	Score     float64
	Key       rune
	Plaintext string
}

// BreakSingleByte tries every charset rune as the XOR key byte and keeps
// the best-scoring candidate whose output decodes as valid UTF-8.
// Candidates that do not decode are discarded, not scored. The strict
// greater-than comparison over the charset's deterministic order means the
// first-encountered best candidate wins on exact ties. The second return
// is false when the charset is empty or no candidate decodes.
func BreakSingleByte(buf []byte, expected Table, cs Charset) (BreakResult, bool) {
	var best BreakResult
	found := false
	for _, r := range cs.Runes() {
		if r > 0xff {
			continue
		}
		decoded := xor.SingleByte(buf, byte(r))
		if !utf8.Valid(decoded) {
			continue
		}
		plaintext := string(decoded)
		score := Score(plaintext, expected, cs)
		if !found || score > best.Score {
			best = BreakResult{Score: score, Key: r, Plaintext: plaintext}
			found = true
		}
	}
	return best, found
}
