package translation

import (
	"strings"
	"unicode"
)

// Chunk splits text into pieces of at most maxLen runes. A cut that would
// land inside a word moves back to the previous whitespace when that
// whitespace lies in the last 30% of the window; otherwise the hard cut is kept.
// Pieces are trimmed and empty pieces dropped.
func Chunk(text string, maxLen int) []string {
	if maxLen <= 0 {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
		return []string{}
	}

	runes := []rune(text)
	chunks := []string{}

	for i := 0; i < len(runes); i += maxLen {
		end := i + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		piece := runes[i:end]

		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			last := lastSpace(piece)
			if last >= 0 && float64(last) > float64(maxLen)*0.7 {
				piece = piece[:last]
				i -= maxLen - last
			}
		}

		if t := strings.TrimSpace(string(piece)); t != "" {
			chunks = append(chunks, t)
		}
	}

	return chunks
}

func lastSpace(rs []rune) int {
	for j := len(rs) - 1; j >= 0; j-- {
		if unicode.IsSpace(rs[j]) {
			return j
		}
	}
	return -1
}
