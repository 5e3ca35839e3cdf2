package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestHexToBase64(t *testing.T) {
	in := "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d"
	want := "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t"

	got, err := HexToBase64(in)
	if err != nil {
		t.Fatalf("HexToBase64 returned error: %v", err)
	}
	if got != want {
		t.Fatalf("HexToBase64 == %q, want %q", got, want)
	}
}

func TestHexToBase64InvalidInput(t *testing.T) {
	if _, err := HexToBase64("zz"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
}

func TestDecodeHexTrimsWhitespace(t *testing.T) {
	got, err := DecodeHex("  48656c6c6f\n")
	if err != nil {
		t.Fatalf("DecodeHex returned error: %v", err)
	}
	if !bytes.Equal(got, []byte("Hello")) {
		t.Fatalf("DecodeHex == %q, want %q", got, "Hello")
	}
}

func TestDecodeBase64TextMultiline(t *testing.T) {
	in := "SGVsbG8s\nIHdvcmxk\nIQ==\n"
	got, err := DecodeBase64Text(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBase64Text returned error: %v", err)
	}
	if !bytes.Equal(got, []byte("Hello, world!")) {
		t.Fatalf("DecodeBase64Text == %q, want %q", got, "Hello, world!")
	}
}

func TestDecodeBase64TextInvalid(t *testing.T) {
	if _, err := DecodeBase64Text(strings.NewReader("not base64 at all")); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}

func TestHexRoundTrip(t *testing.T) {
	buf := []byte{0x00, 0x63, 0x24, 0xff}
	got, err := DecodeHex(EncodeHex(buf))
	if err != nil {
		t.Fatalf("DecodeHex returned error: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Fatalf("round trip == %v, want %v", got, buf)
	}
}
