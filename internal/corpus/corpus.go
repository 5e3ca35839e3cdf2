// Package corpus loads and fetches the baseline natural-language text
// that frequency tables are built from.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// Load reads the corpus text from the provided file path.
func Load(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus: %w", err)
	}
	text := string(buf)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("corpus is empty: %s", path)
	}
	return text, nil
}

// Checksum returns a content address for corpus text, used as a cache
// key for derived frequency tables.
func Checksum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
