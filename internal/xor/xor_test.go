package xor

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestFixed(t *testing.T) {
	a, _ := hex.DecodeString("1c0111001f010100061a024b53535009181c")
	b, _ := hex.DecodeString("686974207468652062756c6c277320657965")
	want, _ := hex.DecodeString("746865206b696420646f6e277420706c6179")

	got, err := Fixed(a, b)
	if err != nil {
		t.Fatalf("Fixed returned error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Fixed == %x, want %x", got, want)
	}
}

func TestFixedLengthMismatch(t *testing.T) {
	if _, err := Fixed([]byte{1, 2}, []byte{1}); err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
}

func TestSingleByte(t *testing.T) {
	cases := []struct {
		buf  []byte
		b    byte
		want []byte
	}{
		{[]byte("hello world"), 0, []byte("hello world")},
		{[]byte{0, 0, 0, 0}, 1, []byte{1, 1, 1, 1}},
		{[]byte{12, 34, 56, 78}, 90, []byte{12 ^ 90, 34 ^ 90, 56 ^ 90, 78 ^ 90}},
	}
	for _, c := range cases {
		got := SingleByte(c.buf, c.b)
		if !bytes.Equal(got, c.want) {
			t.Errorf("SingleByte(%v, %v) == %v, want %v", c.buf, c.b, got, c.want)
		}
	}
}

func TestRepeatingKey(t *testing.T) {
	got := RepeatingKey([]byte("I am alpha"), []byte("ICE"))
	want := []byte{0x00, 0x63, 0x24, 0x24, 0x63, 0x24, 0x25, 0x33, 0x2D, 0x28}
	if !bytes.Equal(got, want) {
		t.Fatalf("RepeatingKey == %x, want %x", got, want)
	}
}

func TestRepeatingKeySelfInverse(t *testing.T) {
	plain := []byte("Burning 'em, if you ain't quick and nimble")
	key := []byte("ICE")
	if got := RepeatingKey(RepeatingKey(plain, key), key); !bytes.Equal(got, plain) {
		t.Fatalf("double RepeatingKey == %q, want %q", got, plain)
	}
}

func TestRepeatingKeyEmptyKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty key")
		}
	}()
	RepeatingKey([]byte("data"), nil)
}
