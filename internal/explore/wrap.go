package explore

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText soft-wraps text to the given display width, breaking on spaces
// where possible and preserving existing newlines.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	var out strings.Builder
	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(wrapLine(line, width))
	}
	return out.String()
}

func wrapLine(line string, width int) string {
	runes := []rune(line)
	var out strings.Builder
	var current []rune
	currentWidth := 0
	lastSpaceIdx := -1

	flush := func(upto int) {
		out.WriteString(string(current[:upto]))
		out.WriteByte('\n')
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		w := runewidth.RuneWidth(r)
		if currentWidth+w > width && len(current) > 0 {
			if lastSpaceIdx >= 0 {
				flush(lastSpaceIdx)
				current = append([]rune{}, current[lastSpaceIdx+1:]...)
			} else {
				flush(len(current))
				current = current[:0]
			}
			currentWidth = lineWidthOf(current)
			lastSpaceIdx = lastSpaceIndex(current)
			continue
		}
		current = append(current, r)
		currentWidth += w
		if r == ' ' {
			lastSpaceIdx = len(current) - 1
		}
		i++
	}
	out.WriteString(string(current))
	return out.String()
}

func lineWidthOf(runes []rune) int {
	total := 0
	for _, r := range runes {
		total += runewidth.RuneWidth(r)
	}
	return total
}

func lastSpaceIndex(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
