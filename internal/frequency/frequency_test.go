package frequency

import (
	"math"
	"testing"
)

func TestBuildCountsCharsetMembers(t *testing.T) {
	cs := NewCharset("abcdefghijklmnopqrstuvwxyz")
	table := Build(cs, "hello")

	if got := table['h']; got != 0.2 {
		t.Fatalf("frequency of 'h' == %v, want 0.2", got)
	}
	if got := table['l']; got != 0.4 {
		t.Fatalf("frequency of 'l' == %v, want 0.4", got)
	}
	if _, ok := table['z']; ok {
		t.Fatalf("unexpected entry for absent rune 'z'")
	}
}

func TestBuildDividesByTotalRuneCount(t *testing.T) {
	// The space is excluded from counting but still part of the denominator.
	table := Build(Default(), "hello world")
	if got, want := table['l'], 3.0/11.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("frequency of 'l' == %v, want %v", got, want)
	}
}

func TestBuildEmptyText(t *testing.T) {
	table := Build(Default(), "")
	if len(table) != 0 {
		t.Fatalf("expected empty table, got %v", table)
	}
}

func TestScorePrefersMatchingDistribution(t *testing.T) {
	cs := Default()
	expected := Table{'a': 0.5, 'b': 0.5}

	balanced := Score("ab", expected, cs)
	skewed := Score("aaaa", expected, cs)
	if balanced <= skewed {
		t.Fatalf("Score(ab) == %v, want greater than Score(aaaa) == %v", balanced, skewed)
	}
}

func TestDefaultCharset(t *testing.T) {
	cs := Default()
	if cs.Len() != 62 {
		t.Fatalf("default charset has %d runes, want 62", cs.Len())
	}
	for _, r := range []rune{'a', 'Z', '5'} {
		if !cs.Contains(r) {
			t.Fatalf("default charset missing %q", r)
		}
	}
	if cs.Contains(' ') || cs.Contains(':') {
		t.Fatalf("default charset should not contain punctuation")
	}
}

func TestCharsetOrderIsDeterministic(t *testing.T) {
	cs := NewCharset("cba21cba")
	want := []rune{'1', '2', 'a', 'b', 'c'}
	got := cs.Runes()
	if len(got) != len(want) {
		t.Fatalf("charset has %d runes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rune %d == %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBreakSingleByteEmptyCharset(t *testing.T) {
	if _, ok := BreakSingleByte([]byte("data"), Table{}, NewCharset("")); ok {
		t.Fatalf("expected no result for empty charset")
	}
}

func TestBreakSingleByteNoDecodableCandidate(t *testing.T) {
	// 0xff XORed with any ASCII charset member yields invalid UTF-8.
	if _, ok := BreakSingleByte([]byte{0xff, 0xff}, Table{}, Default()); ok {
		t.Fatalf("expected no result when nothing decodes")
	}
}
