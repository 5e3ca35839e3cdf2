package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const proseCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 :'.,!?-\n"

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func TestBreakCommand(t *testing.T) {
	out := runCommand(t,
		"--corpus", "testdata/corpus.txt",
		"--charset", proseCharset,
		"--format", "base64",
		"--candidates",
		"testdata/ciphertext.txt",
	)
	if !strings.Contains(out, "Key: Terminator X: Bring the noise") {
		t.Fatalf("break output missing recovered key:\n%s", out)
	}
	if !strings.Contains(out, "Key size: 29") {
		t.Fatalf("break output missing key size:\n%s", out)
	}
	if !strings.Contains(out, "Rank") {
		t.Fatalf("break output missing candidates table:\n%s", out)
	}
}

func TestDetectCommand(t *testing.T) {
	out := runCommand(t,
		"detect",
		"--corpus", "testdata/corpus.txt",
		"testdata/detect.txt",
	)
	if !strings.Contains(out, "Line: 12") {
		t.Fatalf("detect output missing line number:\n%s", out)
	}
	if !strings.Contains(out, "Now that the party is jumping") {
		t.Fatalf("detect output missing plaintext:\n%s", out)
	}
}

func TestSingleCommand(t *testing.T) {
	out := runCommand(t,
		"single",
		"--corpus", "testdata/corpus.txt",
		"1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736",
	)
	if !strings.Contains(out, "Cooking MC's like a pound of bacon") {
		t.Fatalf("single output missing plaintext:\n%s", out)
	}
}

func TestEncryptCommand(t *testing.T) {
	inPath := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(inPath, []byte("I am alpha"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	out := runCommand(t, "encrypt", "--key", "ICE", "--format", "hex", inPath)
	if strings.TrimSpace(out) != "00632424632425332d28" {
		t.Fatalf("encrypt output == %q, want %q", strings.TrimSpace(out), "00632424632425332d28")
	}
}

func TestXORCommand(t *testing.T) {
	out := runCommand(t, "xor",
		"1c0111001f010100061a024b53535009181c",
		"686974207468652062756c6c277320657965",
	)
	if strings.TrimSpace(out) != "746865206b696420646f6e277420706c6179" {
		t.Fatalf("xor output == %q", strings.TrimSpace(out))
	}
}

func TestB64Command(t *testing.T) {
	out := runCommand(t, "b64",
		"49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d",
	)
	want := "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t"
	if strings.TrimSpace(out) != want {
		t.Fatalf("b64 output == %q, want %q", strings.TrimSpace(out), want)
	}
}
