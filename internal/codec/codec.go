// Package codec converts between raw bytes and the hex/Base64 text
// formats ciphertext ships in.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// DecodeHex decodes a hex string, tolerating surrounding whitespace.
func DecodeHex(s string) ([]byte, error) {
	buf, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	return buf, nil
}

// EncodeHex encodes buf as a lowercase hex string.
func EncodeHex(buf []byte) string {
	return hex.EncodeToString(buf)
}

// HexToBase64 re-encodes a hex string as standard Base64.
func HexToBase64(s string) (string, error) {
	buf, err := DecodeHex(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// EncodeBase64 encodes buf as standard Base64.
func EncodeBase64(buf []byte) string {
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeBase64Text decodes Base64 content that may span multiple lines,
// the usual shape of ciphertext files. Newlines and surrounding
// whitespace are stripped before decoding.
func DecodeBase64Text(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	compact := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, string(raw))
	buf, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return buf, nil
}
