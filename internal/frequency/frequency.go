// Package frequency provides character-frequency language models and a
// single-byte XOR breaker built on them.
package frequency

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// Charset is an immutable set of runes considered meaningful for scoring.
// Iteration order is deterministic (ascending code point), which makes
// tie-breaking in the breaker reproducible.
type Charset struct {
	ordered []rune
	members map[rune]struct{}
}

// NewCharset builds a charset from the runes of s, deduplicated and sorted.
func NewCharset(s string) Charset {
	members := make(map[rune]struct{})
	for _, r := range s {
		members[r] = struct{}{}
	}
	ordered := make([]rune, 0, len(members))
	for r := range members {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	return Charset{ordered: ordered, members: members}
}

var defaultCharset = sync.OnceValue(func() Charset {
	var b []rune
	for r := 'a'; r <= 'z'; r++ {
		b = append(b, r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		b = append(b, r)
	}
	for r := '0'; r <= '9'; r++ {
		b = append(b, r)
	}
	return NewCharset(string(b))
})

// Default returns the ASCII letters-and-digits charset.
func Default() Charset {
	return defaultCharset()
}

// Runes returns the charset members in deterministic order. The caller
// must not modify the returned slice.
func (c Charset) Runes() []rune {
	return c.ordered
}

// Contains reports whether r belongs to the charset.
func (c Charset) Contains(r rune) bool {
	_, ok := c.members[r]
	return ok
}

// Len returns the number of runes in the charset.
func (c Charset) Len() int {
	return len(c.ordered)
}

// Table maps a rune to its relative frequency in [0,1].
type Table map[rune]float64

// Build counts occurrences of charset members in text and divides each
// count by the total rune count of text, not just the filtered count.
// Empty text yields an empty table.
func Build(cs Charset, text string) Table {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return Table{}
	}
	counts := make(map[rune]int)
	for _, r := range text {
		if cs.Contains(r) {
			counts[r]++
		}
	}
	table := make(Table, len(counts))
	for r, n := range counts {
		table[r] = float64(n) / float64(total)
	}
	return table
}
