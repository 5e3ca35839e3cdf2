// Package report renders analysis results and candidate diagnostics.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/xorcrack/internal/breaker"
)

const (
	sparkChars          = " .:-=+*#%@"
	previewLimit        = 160
	terminalWidthBackup = 80
)

// RenderRecovery prints a recovered key and plaintext.
func RenderRecovery(w io.Writer, rec breaker.Recovery) error {
	if _, err := fmt.Fprintf(w, "Key size: %d\n", rec.KeySize); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Key: %s\n", rec.Key); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score: %.4f\n", rec.Score); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s", rec.Plaintext); err != nil {
		return err
	}
	if len(rec.Plaintext) == 0 || rec.Plaintext[len(rec.Plaintext)-1] != '\n' {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

// RenderCandidates prints the per-key-size diagnostics table with a
// sparkline of the normalized Hamming distances in estimator rank order.
func RenderCandidates(w io.Writer, candidates []breaker.Candidate) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(w, "No candidate key sizes.")
		return err
	}

	headers := []string{"Rank", "Size", "Distance", "Score", "Key"}
	rows := make([][]string, 0, len(candidates))
	distances := make([]float64, 0, len(candidates))
	for i, c := range candidates {
		key := c.Key
		if !c.OK {
			key = "(no decodable key)"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(c.KeySize),
			fmt.Sprintf("%.4f", c.Distance),
			formatScore(c),
			key,
		})
		distances = append(distances, c.Distance)
	}

	for _, line := range formatTable(headers, rows, keyColumnLimit()) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nDistance %s\n", Sparkline(distances)); err != nil {
		return err
	}
	return nil
}

// keyColumnLimit budgets the key column against the terminal width,
// leaving room for the numeric columns.
func keyColumnLimit() int {
	limit := TerminalWidth() - 28
	if limit < 20 {
		limit = 20
	}
	if limit > previewLimit {
		limit = previewLimit
	}
	return limit
}

func formatScore(c breaker.Candidate) string {
	if !c.OK {
		return "-"
	}
	return fmt.Sprintf("%.4f", c.Score)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth reports the stdout terminal width, with a fallback for
// pipes and redirects.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
