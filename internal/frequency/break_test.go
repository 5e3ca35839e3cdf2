package frequency

import (
	"encoding/hex"
	"os"
	"testing"
)

func englishTable(t *testing.T, cs Charset) Table {
	t.Helper()
	text, err := os.ReadFile("testdata/corpus.txt")
	if err != nil {
		t.Fatalf("failed to read corpus: %v", err)
	}
	return Build(cs, string(text))
}

func TestBreakSingleByteRecoversPlaintext(t *testing.T) {
	ciphertext, err := hex.DecodeString(
		"1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736")
	if err != nil {
		t.Fatalf("failed to decode ciphertext: %v", err)
	}

	cs := Default()
	result, ok := BreakSingleByte(ciphertext, englishTable(t, cs), cs)
	if !ok {
		t.Fatalf("expected a break result")
	}
	if result.Key != 'X' {
		t.Fatalf("recovered key %q, want 'X'", result.Key)
	}
	if want := "Cooking MC's like a pound of bacon"; result.Plaintext != want {
		t.Fatalf("recovered plaintext %q, want %q", result.Plaintext, want)
	}
	if result.Score <= 0 {
		t.Fatalf("expected a positive score, got %v", result.Score)
	}
}

func TestBreakSingleByteRoundTrip(t *testing.T) {
	cs := Default()
	table := englishTable(t, cs)

	plain := "the quick brown fox jumps over the lazy dog"
	encrypted := make([]byte, len(plain))
	for i := 0; i < len(plain); i++ {
		encrypted[i] = plain[i] ^ 'k'
	}

	result, ok := BreakSingleByte(encrypted, table, cs)
	if !ok {
		t.Fatalf("expected a break result")
	}
	if result.Key != 'k' || result.Plaintext != plain {
		t.Fatalf("recovered (%q, %q), want ('k', %q)", result.Key, result.Plaintext, plain)
	}
}
