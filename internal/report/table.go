package report

import (
	"strings"
	"unicode/utf8"
)

// formatTable lays out the candidate diagnostics table. Every column but
// the last is numeric and right-aligned; the last column holds free text
// (the recovered key), clamped to textLimit and left-aligned without
// trailing padding.
func formatTable(headers []string, rows [][]string, textLimit int) []string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths)-1 {
				break
			}
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, textLimit))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, textLimit))
	}
	return lines
}

func formatRow(row []string, widths []int, textLimit int) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == len(widths)-1 {
			b.WriteString(clampText(cell, textLimit))
			continue
		}
		if pad := widths[i] - utf8.RuneCountInString(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(cell)
	}
	return b.String()
}

func clampText(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
